// Package hook provides dispatch hooks and per-command around-advice.
//
// # Hook Types
//
// Global hooks see every dispatched action:
//
//   - PreDispatchHook: Called before an action is dispatched. Can cancel the action.
//   - PostDispatchHook: Called after dispatch completes. Can inspect/modify results.
//
// Advice is attached to a single command name. Each advice receives the
// action, the execution context and a continuation. Calling next runs the
// remaining advice and finally the command; not calling it replaces the
// command for this invocation:
//
//	m.RegisterAdvice("editor.insertNewline", hook.NewAroundFunc("lists", 100,
//	    func(action input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
//	        if !inList(ctx) {
//	            return next()
//	        }
//	        return insertItem(ctx)
//	    }))
//
// # Priority System
//
//   - Pre-hooks: Higher priority runs first.
//   - Post-hooks: Lower priority runs first, higher runs last (to see final results).
//   - Advice: Higher priority wraps outermost. Equal priorities keep
//     registration order.
//
// Registering a hook or advice under a name that is already present
// replaces the earlier registration.
//
// # Thread Safety
//
// The Manager uses read-write locks. Chains are built from a copy of the
// registered advice, so advice may be added or removed while a command runs.
package hook

// Package dispatcher routes actions to handlers and coordinates execution.
//
// The dispatcher is the central command bus. Every editing command goes
// through Dispatch:
//
//  1. An execution context is built around the engine.
//  2. Global pre-dispatch hooks run and may cancel the action.
//  3. The handler registered for the action name is looked up.
//  4. The handler is wrapped in the advice registered for that command
//     (see package hook) and run inside a single undo group, so a command
//     and whatever its advice does undo in one step.
//  5. Panics are recovered into error results when configured.
//  6. Post-dispatch hooks run and metrics are recorded.
//
// # Handlers
//
// Handlers are registered by exact action name, or in bulk through a
// handler.NamespaceHandler:
//
//	d := dispatcher.New(dispatcher.DefaultConfig())
//	d.SetEngine(eng)
//	d.RegisterNamespace(editor.NewHandler())
//
//	result := d.Dispatch(input.NewAction("editor.insertNewline"))
//
// # Advice
//
// Features that change what a native command does attach around-advice
// to it instead of replacing the handler:
//
//	d.Hooks().RegisterAdvice("editor.insertNewline", myAdvice)
package dispatcher

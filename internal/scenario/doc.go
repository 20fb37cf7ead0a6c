// Package scenario replays recorded editing sessions against a headless
// editor and compares the resulting buffer and cursor with expectations.
//
// Scenario files are YAML:
//
//	scenarios:
//	  - name: outdent empty nested item
//	    lines: ["- one", "- two", "  - apple", "  - "]
//	    cursor: {line: 4, end: true}
//	    steps:
//	      - key: Enter
//	    expect:
//	      lines: ["- one", "- two", "  - apple", "- "]
//
// Lines are numbered from 1. Columns are byte offsets within the line,
// starting at 0; end selects the end of the line.
package scenario

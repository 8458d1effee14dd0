package skillet

import "github.com/davecgh/go-spew/spew"

var structDump = spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}

// Sdump renders v field by field, ignoring String methods, so parsed values
// show their structure rather than their text form.
func Sdump(v ...any) string {
	return structDump.Sdump(v...)
}

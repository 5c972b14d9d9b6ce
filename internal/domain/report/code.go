package report

import "fmt"

// Department short codes used in report numbers. Unknown departments fall
// back to the catch-all code.
var deptCodes = map[string]string{
	"planning":       "PS",
	"finance":        "FN",
	"operations":     "OP",
	"human_resource": "HR",
	"engineering":    "EN",
}

const defaultDeptCode = "GN"

func DeptCode(department string) string {
	if c, ok := deptCodes[department]; ok {
		return c
	}
	return defaultDeptCode
}

// BuildCode formats a report code like PS-2025-0007. seq is 1-based.
func BuildCode(department string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", DeptCode(department), year, seq)
}

// CodePrefix is the department+year prefix shared by sequential codes,
// trailing dash included.
func CodePrefix(department string, year int) string {
	return fmt.Sprintf("%s-%d-", DeptCode(department), year)
}

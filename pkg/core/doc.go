// Package core provides a small, stable facade over esglens's internal
// scanner for external integrations such as HTTP handlers or batch jobs.
//
// Example:
//
//	res := core.Scan(reportText, "")
//	for _, h := range res.Hits { /* hand evidence to a reviewer */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core

// Package validator collects problems found in operator-supplied input,
// chiefly classification rule tables loaded from disk.
//
// Checks append [Issue] values to a [Result]. Errors make the input
// unusable; warnings are reported but do not block loading.
//
//	res := &validator.Result{Source: path}
//	if r.Name == "" {
//		res.AddError(i, "name", "is required", nil)
//	}
//	if res.HasErrors() {
//		return res.Err()
//	}
//
// A [Reporter] prints a Result as colored text or JSON.
package validator

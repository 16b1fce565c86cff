// Package formhandler validates, normalizes and filters untrusted form
// input and uploads against declarative field rules.
//
// A Handler is built for one submission from a data source, an optional
// files source and a rules.Set, and runs once:
//
//	set := rules.NewSet().
//		Add("email", rules.Declaration{Type: rules.TypeEmail, Checks: []rules.Check{
//			{That: rules.ItDoesNotExist, Model: "users"},
//		}}).
//		Add("password", rules.Shorthand(rules.TypePassword)).
//		Add("password_confirm", rules.Declaration{Type: rules.TypePassword, Options: rules.Options{
//			ShouldMatch: &rules.Match{Target: "password"},
//		}})
//
//	data, files, err := formhandler.FromRequest(r, "")
//	if err != nil {
//		return err
//	}
//	defer files.Remove()
//
//	h := formhandler.New(data, files, set, formhandler.WithCounter(counter))
//	ok, err := h.Execute(r.Context())
//	if err != nil {
//		return err
//	}
//	if !ok {
//		return h.Err()
//	}
//	email := h.Data()["email"]
//
// Execution resolves the rules, records missing required fields, validates
// every element by type and then runs existence checks, upload storage,
// filters and the Validate and Compute hooks. The last phase can run for
// several fields at once with WithConcurrency; errors are always reported
// in declaration order.
//
// Field failures are collected in an error bag keyed by field, first error
// wins. Returned errors are reserved for setup and runtime faults such as a
// missing data source, an unreachable database or a failed file move.
package formhandler

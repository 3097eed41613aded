// Package valigo provides:
//
// - Composable, immutable schema values for describing expected data shapes
// - A validation/transformation pipeline executed after each structural check
// - A stable error model via Issues (structured path, code, message)
// - Decode-and-validate entry points with depth/size/duplicate-key enforcement
//
// Design policy:
// - Keep only the engine surface in the root package; put detailed implementations under internal/.
// - Place constructors under dsl/, stock pipeline actions under pipe/, and the CLI under cmd/valigo.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.Object(
//		dsl.Field("email", dsl.String(pipe.Email())),
//	)
//	v, err := valigo.Parse(ctx, s, input)
//	v, err = valigo.ParseFrom(ctx, s, valigo.JSONBytes(data))
package valigo

// Package mandala turns a single inspiration word into a downloadable
// black and white mandala.
//
// The flow is one synchronous chain per user action: validate the inputs,
// ask the image provider for exactly one 1024x1024 image, fetch it, flatten
// any transparency onto white and re-encode it as JPEG. Every failure is
// returned as a *Failure carrying one Kind from a closed set, so presentation
// shells can switch on the kind instead of on provider-specific errors.
//
//	gen := mandala.New(factory, mandala.WithTelemetry(hook))
//	res, err := gen.Generate(ctx, "nature", core.NewSecret(apiKey))
//	if err != nil {
//	    var f *mandala.Failure
//	    errors.As(err, &f)
//	    fmt.Println(f.Message())
//	    return
//	}
//	os.WriteFile(res.Filename, res.JPEG, 0o644)
package mandala

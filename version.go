package descent

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/descent.Version=...".
var Version = "dev"

package types

// Version is overwritten at build time with -ldflags "-X ...types.Version=..."
var Version = "dev"

// AppName is used in the CLI and in the User-Agent of outbound requests
const AppName = "onesky-appdesc"

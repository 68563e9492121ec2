package version

// Version is the current version of ymake. Override at build time with:
//
//	go build -ldflags "-X github.com/ymake-go/ymake/version.Version=x.y.z"
var Version = "dev"

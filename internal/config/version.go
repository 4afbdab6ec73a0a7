package config

import "fmt"

const notSet string = "not set"

// these information will be collected when build, by `-ldflags "-X main.appVersion=0.1"`.
//
//nolint:gochecknoglobals // build metadata
var (
	appVersion = notSet
	buildTime  = notSet
	gitCommit  = notSet
	gitRef     = notSet
)

func Version() string {
	return appVersion
}

func BuildInfo() string {
	return fmt.Sprintf("version %s, built %s (%s @ %s)", appVersion, buildTime, gitCommit, gitRef)
}

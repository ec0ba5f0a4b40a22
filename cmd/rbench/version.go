package main

// Set at link time:
//
//	go build -ldflags "-X main.versionTag=v1.0.0 -X main.commit=$(git rev-parse HEAD)"
var (
	versionTag string
	commit     string
)

func versionString() string {
	if len(versionTag) == 0 {
		return "private-dev"
	}
	if len(commit) == 0 {
		return versionTag
	}
	return versionTag + " (" + commit[:min(len(commit), 7)] + ")"
}

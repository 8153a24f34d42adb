// Package launch builds VRChat launch URIs and hands them to the OS.
package launch

import (
	"net/url"

	"github.com/graaaaa/vrcvisits/internal/appinfo"
	"github.com/graaaaa/vrcvisits/internal/instance"
)

const (
	directBase = "vrchat://launch"
	webBase    = "https://vrchat.com/home/launch"
)

// DirectURI returns the vrchat:// URI that makes the client join inst.
// The identifier is passed unescaped; the client does not decode it.
func DirectURI(inst instance.Instance) string {
	return directBase + "?ref=" + appinfo.LaunchRef + "&id=" + inst.Raw()
}

// WebURI returns the vrchat.com page that offers to launch inst.
func WebURI(inst instance.Instance) string {
	q := url.Values{}
	q.Set("worldId", inst.WorldID)
	if inst.Suffix != "" {
		q.Set("instanceId", inst.Suffix)
	}
	return webBase + "?" + q.Encode()
}

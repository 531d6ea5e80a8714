package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/novaagent/core/registry"
	"github.com/novaagent/core/tools"
)

// RemoteMap is the alias -> fully-qualified-remote-name profile used to
// build a Registry. It is the same type registry.Registry consumes; it is
// re-exported under this package so a host configuring a Graph has one
// import to reach for.
type RemoteMap = registry.RemoteMap

// DefaultRemoteMap returns the MCP-first domain split: vision_server for
// perception tools, mouse_server/keyboard_server for input tools,
// uia_server for UI Automation tools.
func DefaultRemoteMap() RemoteMap {
	return registry.DefaultRemoteMap()
}

// remoteMapFile is the YAML shape DecodeRemoteMap accepts: a flat mapping
// of alias to fully-qualified remote name, e.g.
//
//	click: mouse_server.click
//	type_text: keyboard_server.type_text
type remoteMapFile map[tools.Ident]tools.RemoteName

// DecodeRemoteMap parses a RemoteMap profile from YAML bytes the host
// already loaded from wherever it keeps dev/prod tool-transport profiles.
// The module itself never touches a filesystem; this only decodes bytes
// handed to it.
func DecodeRemoteMap(data []byte) (RemoteMap, error) {
	var raw remoteMapFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RemoteMap{}, fmt.Errorf("workflow: decode remote map: %w", err)
	}
	return registry.NewRemoteMap(raw), nil
}

package config

// UnnamedServer is the placeholder name used for server entries that do not
// carry a "name" field. It only ever shows up in logs and skip reasons.
const UnnamedServer = "<unnamed>"

// ServerSpec describes one configured MCP server. Only Name is interpreted
// by the connector itself; everything else the entry carried travels in
// Params for the tool source factory to pick apart (command, args, env, url,
// headers, type, ...).
type ServerSpec struct {
	Name   string
	Params map[string]any
}

// specFromRecord builds a ServerSpec from one decoded config record.
// The name key is lifted out of the record; the remaining keys become the
// open parameter map.
func specFromRecord(record map[string]any) ServerSpec {
	spec := ServerSpec{
		Name:   UnnamedServer,
		Params: make(map[string]any, len(record)),
	}
	for k, v := range record {
		if k == "name" {
			if s, ok := v.(string); ok && s != "" {
				spec.Name = s
			}
			continue
		}
		spec.Params[k] = v
	}
	return spec
}

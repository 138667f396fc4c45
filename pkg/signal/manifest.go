package signal

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// manifest is the YAML shape hosts use to curate a registry from config:
//
//	signals:
//	  - player.moved
//	  - game.over
type manifest struct {
	Signals []string `yaml:"signals"`
}

// KindsFromManifest reads a YAML kind manifest and resolves each listed name
// against the process catalog. Every name must refer to a kind already
// defined with NewKind; unknown names are an error. The result feeds
// NewRegistry for hosts that curate their kind set in configuration rather
// than code.
func KindsFromManifest(r io.Reader) ([]Kind, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "parsing signal manifest")
	}
	kinds := make([]Kind, 0, len(m.Signals))
	for _, name := range m.Signals {
		k, ok := LookupKind(name)
		if !ok {
			return nil, errors.Errorf("signal manifest: kind %q is not defined", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

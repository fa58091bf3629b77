package meeting

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

var (
	regionsOnce sync.Once
	regions     map[string]string
)

// RegionFor resolves a city name to its region/state via the embedded lookup
// table. Unknown cities return an empty region and false.
func RegionFor(city string) (string, bool) {
	regionsOnce.Do(func() {
		if err := yaml.Unmarshal(regionsYAML, &regions); err != nil {
			// The table is embedded at build time; a parse failure is a
			// programming error, not a runtime condition.
			panic(fmt.Sprintf("invalid embedded region table: %v", err))
		}
	})

	state, ok := regions[city]
	return state, ok
}

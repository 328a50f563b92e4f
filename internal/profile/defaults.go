package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/guimoneda/gradient-bio/internal/types"
)

//go:embed default_profile.json
var defaultProfileJSON []byte

// Default returns the embedded fallback document used when neither the
// snapshot nor the remote resource is available.
func Default() types.Profile {
	var p types.Profile
	if err := json.Unmarshal(defaultProfileJSON, &p); err != nil {
		panic(fmt.Sprintf("embedded default profile is invalid: %v", err))
	}
	return p
}

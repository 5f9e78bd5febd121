package memorylake

import "github.com/memorylake/memorylake-go/internal/version"

// Version is the memorylake-go client version. The remote backend stamps it
// on every request via the x-memorylake-client-version header.
const Version = version.Version

package builtin

import "github.com/ipfs/go-cid"

// Set of actor code types that can represent external signing parties.
// Populated alongside the code IDs.
var CallerTypesSignable []cid.Cid

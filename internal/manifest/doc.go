// Package manifest reads selection manifests: YAML files that list item
// activations so a selection can be rebuilt without an interactive session.
//
//	title: Saloon raid
//	items:
//	  - name: Moonshine
//	    category: B
//	    quantity: 2
//	  - name: Revolver
//	    category: W
//
// A manifest is input, not saved state. Replaying it drives a session
// controller exactly as a user would.
package manifest

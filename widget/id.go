// Package widget builds and maintains the widget tree: the structural
// result of walking a compiled template.Blueprint forest, reacting to
// the reactive store's change queue by re-evaluating just the attributes
// a change touched.
package widget

import (
	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/internal/arena"
	"github.com/anathema-go/anathema/reactive"
)

// ID addresses a node in the tree. It is a generational arena key, so a
// stale ID (one whose node has since been removed) fails any lookup
// instead of silently resolving to whatever unrelated node was later
// inserted into the same slot.
type ID = arena.Key

// subscriberKey packs an ID into the uint64 reactive.Subscriber.WidgetKey
// expects, and unpacks it again. The eval package's WidgetID is the same
// shape, so an Attributes lookup and a reactive subscription always agree
// on what a given widget's key means.
func subscriberKey(id ID) uint64 {
	return uint64(id.Index)<<32 | uint64(id.Generation)
}

func idFromKey(key uint64) ID {
	return ID{Index: uint32(key >> 32), Generation: uint32(key)}
}

// widgetEvalID converts an ID to the eval package's opaque attribute-table
// key.
func widgetEvalID(id ID) eval.WidgetID { return eval.WidgetID(subscriberKey(id)) }

// subscriberFor builds the Subscriber a given widget's attribute at index
// attr should register against when it reads a reactive value.
func subscriberFor(id ID, attr uint32) reactive.Subscriber {
	return reactive.Subscriber{WidgetKey: subscriberKey(id), AttributeIndex: attr}
}

// Package hypermedia resolves the typed link collections the API embeds
// in its responses. Resolution is pure: given links and a selection key,
// return the matching href or signal absence; lookups that must resolve
// to exactly one item fail eagerly on zero or multiple matches.
package hypermedia

import "encoding/xml"

// Link is a single navigable reference embedded in an entity response.
// Rel classifies what the link leads to ("Create", "Delete", "Related"),
// Type names the entity type behind the href.
type Link struct {
	Rel  string `xml:"Rel,attr" json:"rel"`
	Type string `xml:"Type,attr,omitempty" json:"type,omitempty"`
	Href string `xml:"Href,attr" json:"href"`
}

// LinkList is the ordered link collection carried by hypermedia entities.
// It unmarshals from the <Links><Link .../></Links> wrapper element.
type LinkList struct {
	XMLName xml.Name `xml:"Links" json:"-"`
	Links   []Link   `xml:"Link" json:"links"`
}

// Well-known relation tags used by the API.
const (
	RelCreate  = "Create"
	RelDelete  = "Delete"
	RelRelated = "Related"
	RelEdit    = "Edit"
	RelDown    = "Down"
	RelUp      = "Up"
)

// Find returns the href of the link with the given relation tag, or
// ok=false when no such link exists. More than one match is a data-model
// violation and fails eagerly rather than picking one arbitrarily.
func (l LinkList) Find(rel string) (href string, ok bool, err error) {
	return l.FindTyped(rel, "")
}

// FindTyped is Find narrowed to a (relation, target type) pair. An empty
// typ matches any target type.
func (l LinkList) FindTyped(rel, typ string) (href string, ok bool, err error) {
	for _, link := range l.Links {
		if link.Rel != rel {
			continue
		}
		if typ != "" && link.Type != typ {
			continue
		}
		if ok {
			return "", false, &AmbiguousError{Name: rel, Type: typ}
		}
		href = link.Href
		ok = true
	}
	return href, ok, err
}

// Require resolves a link that the calling operation depends on. A missing
// link is a NotFoundError, multiple matches an AmbiguousError.
func (l LinkList) Require(rel string) (string, error) {
	return l.RequireTyped(rel, "")
}

// RequireTyped is Require narrowed to a (relation, target type) pair.
func (l LinkList) RequireTyped(rel, typ string) (string, error) {
	href, ok, err := l.FindTyped(rel, typ)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &NotFoundError{Name: rel, Type: typ}
	}
	return href, nil
}

// Named is implemented by entity references that can be resolved by name
// within a collection.
type Named interface {
	EntityName() string
	EntityType() string
}

// FindNamed resolves exactly one entity by (name, type) in a reference
// collection. Zero matches yield NotFoundError, more than one an
// AmbiguousError; the domain never allows picking among duplicates.
func FindNamed[E Named](items []E, name, typ string) (E, error) {
	var (
		found E
		ok    bool
	)
	for _, item := range items {
		if item.EntityName() != name {
			continue
		}
		if typ != "" && item.EntityType() != typ {
			continue
		}
		if ok {
			var zero E
			return zero, &AmbiguousError{Name: name, Type: typ}
		}
		found = item
		ok = true
	}
	if !ok {
		var zero E
		return zero, &NotFoundError{Name: name, Type: typ}
	}
	return found, nil
}

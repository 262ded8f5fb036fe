/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package drawing defines an immutable description of a vector drawing, and
// the utilities for assembling one programmatically:
//
// Element, a node in a finished drawing tree, with a kind (an SVG element
// name such as "line" or "g"), a set of string attributes, optional text
// content, and ordered children;
//
// TreeBuilder and Builder, for assembling a drawing tree fluently;
//
// AttrUpdate functions (Attr, Float, Class, Text, ...) for decorating the
// element under construction.
//
// A drawing is assembled via
//
//	tb := drawing.NewTreeBuilder(drawing.KindSVG)
//	tb.Root().With(drawing.Float("width", 400)).
//	  Child(drawing.KindLine).With(drawing.Float("x1", 0), ...)
//	root, err := tb.Build()
//
// Errors raised by any AttrUpdate are collected and returned once from Build.
// The Element returned by Build shares no state with the builder, so later
// builder use cannot alter it.
package drawing

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Element kinds used by chart drawings.
const (
	KindSVG    = "svg"
	KindGroup  = "g"
	KindLine   = "line"
	KindPath   = "path"
	KindCircle = "circle"
	KindRect   = "rect"
	KindText   = "text"
	KindTitle  = "title"
)

const classAttr = "class"

// Element is a single node of a finished drawing tree.
type Element struct {
	kind     string
	attrs    map[string]string
	text     string
	children []*Element
}

// Kind returns the receiver's element kind.
func (e *Element) Kind() string {
	return e.kind
}

// Attr returns the value of the specified attribute, and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// FloatAttr returns the specified attribute parsed as a float64.
func (e *Element) FloatAttr(key string) (float64, error) {
	v, ok := e.attrs[key]
	if !ok {
		return 0, fmt.Errorf("%s element has no attribute '%s'", e.kind, key)
	}
	return strconv.ParseFloat(v, 64)
}

// AttrKeys returns the receiver's attribute names in increasing order.
func (e *Element) AttrKeys() []string {
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasClass returns true if the receiver's class list contains class.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.attrs[classAttr]) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the receiver's text content.
func (e *Element) Text() string {
	return e.text
}

// Children returns the receiver's children in order.
func (e *Element) Children() []*Element {
	ret := make([]*Element, len(e.children))
	copy(ret, e.children)
	return ret
}

// Walk visits the receiver and its descendants in document order.  If visit
// returns false, the visited element's descendants are skipped.
func (e *Element) Walk(visit func(*Element) bool) {
	if !visit(e) {
		return
	}
	for _, child := range e.children {
		child.Walk(visit)
	}
}

// Find returns all elements under (and including) the receiver for which
// match returns true, in document order.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var ret []*Element
	e.Walk(func(el *Element) bool {
		if match(el) {
			ret = append(ret, el)
		}
		return true
	})
	return ret
}

// FindClass returns all elements carrying the specified class.
func (e *Element) FindClass(class string) []*Element {
	return e.Find(func(el *Element) bool {
		return el.HasClass(class)
	})
}

// FindKind returns all elements of the specified kind.
func (e *Element) FindKind(kind string) []*Element {
	return e.Find(func(el *Element) bool {
		return el.kind == kind
	})
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (e *Element) PrettyPrint(indent string) string {
	ret := []string{fmt.Sprintf("%s<%s>", indent, e.kind)}
	for _, k := range e.AttrKeys() {
		ret = append(ret, fmt.Sprintf("%s  Attr '%s': '%s'", indent, k, e.attrs[k]))
	}
	if e.text != "" {
		ret = append(ret, fmt.Sprintf("%s  Text: '%s'", indent, e.text))
	}
	for _, child := range e.children {
		ret = append(ret, child.PrettyPrint(indent+"  "))
	}
	return strings.Join(ret, "\n")
}

// MarshalJSON encodes an Element as the JS object `Element`:
//
//	type KV = [string, string]
//	type Element = [
//	  string,                      ; its kind
//	  KV[],                        ; its attributes, sorted by name
//	  string,                      ; its text content
//	  Element[],                   ; its children
//	]
func (e *Element) MarshalJSON() ([]byte, error) {
	keys := e.AttrKeys()
	attrs := make([][2]string, len(keys))
	for idx, k := range keys {
		attrs[idx] = [2]string{k, e.attrs[k]}
	}
	children := e.children
	if children == nil {
		children = []*Element{}
	}
	return json.Marshal([]any{e.kind, attrs, e.text, children})
}

func (e *Element) clone() *Element {
	ret := &Element{
		kind:     e.kind,
		attrs:    make(map[string]string, len(e.attrs)),
		text:     e.text,
		children: make([]*Element, len(e.children)),
	}
	for k, v := range e.attrs {
		ret.attrs[k] = v
	}
	for idx, child := range e.children {
		ret.children[idx] = child.clone()
	}
	return ret
}

type errors struct {
	errs []error
}

func (errs *errors) add(err error) {
	errs.errs = append(errs.errs, err)
}

func (errs *errors) hasError() bool {
	return len(errs.errs) > 0
}

func (errs *errors) toError() error {
	if len(errs.errs) == 0 {
		return nil
	}
	ret := make([]string, len(errs.errs))
	for idx, err := range errs.errs {
		ret[idx] = err.Error()
	}
	return fmt.Errorf("%s", strings.Join(ret, ", "))
}

// Builder is implemented by types that can assemble drawing trees.
type Builder interface {
	// With applies the provided updates to the element under construction.
	With(updates ...AttrUpdate) Builder
	// Child appends a new child element of the specified kind, returning a
	// Builder for it.
	Child(kind string) Builder
}

// TreeBuilder streamlines assembling a drawing tree.
type TreeBuilder struct {
	errs *errors
	root *elementBuilder
}

// NewTreeBuilder returns a new TreeBuilder whose root element has the
// specified kind.
func NewTreeBuilder(kind string) *TreeBuilder {
	errs := &errors{}
	return &TreeBuilder{
		errs: errs,
		root: newElementBuilder(errs, kind),
	}
}

// Root returns a Builder for the receiver's root element.
func (tb *TreeBuilder) Root() Builder {
	return tb.root
}

// Build completes and returns the drawing under construction.
func (tb *TreeBuilder) Build() (*Element, error) {
	if tb.errs.hasError() {
		return nil, tb.errs.toError()
	}
	return tb.root.e.clone(), nil
}

// elementBuilder assembles a single Element.
type elementBuilder struct {
	errs *errors
	e    *Element
}

func newElementBuilder(errs *errors, kind string) *elementBuilder {
	return &elementBuilder{
		errs: errs,
		e: &Element{
			kind:  kind,
			attrs: map[string]string{},
		},
	}
}

// With applies the provided AttrUpdates to the receiver in order.  Once any
// update has failed, further updates are ignored.
func (eb *elementBuilder) With(updates ...AttrUpdate) Builder {
	if !eb.errs.hasError() {
		for _, update := range updates {
			if update != nil {
				if err := update(eb); err != nil {
					eb.errs.add(err)
					break
				}
			}
		}
	}
	return eb
}

func (eb *elementBuilder) Child(kind string) Builder {
	child := newElementBuilder(eb.errs, kind)
	eb.e.children = append(eb.e.children, child.e)
	return child
}

// AttrUpdate is a function that updates a provided elementBuilder.  A nil
// AttrUpdate does nothing.
type AttrUpdate func(eb *elementBuilder) error

// EmptyUpdate is an AttrUpdate that does nothing.
var EmptyUpdate AttrUpdate = nil

// Error injects an error into the drawing under construction.
func Error(err error) AttrUpdate {
	return func(eb *elementBuilder) error {
		return err
	}
}

// If applies the provided AttrUpdate if the provided predicate is true.
func If(predicate bool, u AttrUpdate) AttrUpdate {
	if predicate {
		return u
	}
	return EmptyUpdate
}

// Chain applies the provided AttrUpdates in order.
func Chain(updates ...AttrUpdate) AttrUpdate {
	return func(eb *elementBuilder) error {
		eb.With(updates...)
		return nil
	}
}

// Attr sets the specified string attribute.
func Attr(key, value string) AttrUpdate {
	return func(eb *elementBuilder) error {
		eb.e.attrs[key] = value
		return nil
	}
}

// Float sets the specified numeric attribute.  Non-finite values are errors:
// a NaN or infinite coordinate can never be drawn.
func Float(key string, value float64) AttrUpdate {
	return func(eb *elementBuilder) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("non-finite value %v for %s attribute '%s'", value, eb.e.kind, key)
		}
		eb.e.attrs[key] = FormatFloat(value)
		return nil
	}
}

// Class extends the element's class list with the provided classes.
func Class(classes ...string) AttrUpdate {
	return func(eb *elementBuilder) error {
		all := strings.Fields(eb.e.attrs[classAttr])
		all = append(all, classes...)
		eb.e.attrs[classAttr] = strings.Join(all, " ")
		return nil
	}
}

// Text sets the element's text content.
func Text(text string) AttrUpdate {
	return func(eb *elementBuilder) error {
		eb.e.text = text
		return nil
	}
}

// FormatFloat formats a coordinate or length with the fewest digits that
// represent it exactly.  Negative zero is formatted as "0".
func FormatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

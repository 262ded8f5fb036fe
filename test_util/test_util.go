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

// Package testutil provides types and methods facilitating testing drawing
// tree construction.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/zoomchart/drawing"
)

// UpdateComparator facilitates testing of AttrUpdates, ensuring that a 'got'
// set of AttrUpdates-under-test yields the same element as a provided 'want'
// set of AttrUpdates.
type UpdateComparator struct {
	got  []drawing.AttrUpdate
	want []drawing.AttrUpdate
}

// NewUpdateComparator returns a new, empty UpdateComparator.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates specifies the receiver's set of AttrUpdates-under-test.
func (uc *UpdateComparator) WithTestUpdates(got ...drawing.AttrUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates specifies a set of AttrUpdates that should yield the same
// result as the receiver's 'WithTestUpdates'.
func (uc *UpdateComparator) WithWantUpdates(want ...drawing.AttrUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare the receiver's 'got' and 'want' AttrUpdates, returning a difference
// message (empty if no difference) and a boolean indicating whether the two
// are different (true) or not (false).  Attribute ordering need not be
// preserved.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	got, err := elementOf(uc.got...)
	if err != nil {
		t.Fatalf("failed to apply test updates: %s", err)
	}
	want, err := elementOf(uc.want...)
	if err != nil {
		t.Fatalf("failed to apply want updates: %s", err)
	}
	if diff := cmp.Diff(want.PrettyPrint(""), got.PrettyPrint("")); diff != "" {
		return fmt.Sprintf("Got element %s, diff (-want +got):\n%s", got.PrettyPrint(""), diff), true
	}
	return "", false
}

func elementOf(updates ...drawing.AttrUpdate) (*drawing.Element, error) {
	tb := drawing.NewTreeBuilder(drawing.KindGroup)
	tb.Root().With(updates...)
	return tb.Build()
}

// TestBuilder is implemented by types that can assemble expected drawing
// trees in tests.
type TestBuilder interface {
	With(updates ...drawing.AttrUpdate) TestBuilder
	Child(kind string) TestBuilder
	AndChild(kind string) TestBuilder
	Parent() TestBuilder
}

// testBuilder provides a mechanism for fluently assembling drawing trees in
// test contexts.
type testBuilder struct {
	b      drawing.Builder
	parent *testBuilder
}

// With applies the provided AttrUpdates to the receiver in order.
func (tb *testBuilder) With(updates ...drawing.AttrUpdate) TestBuilder {
	if tb != nil {
		tb.b.With(updates...)
	}
	return tb
}

// Child adds a child element to the receiver, returning a TestBuilder for
// that child.  It supports chaining.
func (tb *testBuilder) Child(kind string) TestBuilder {
	return &testBuilder{
		b:      tb.b.Child(kind),
		parent: tb,
	}
}

// AndChild adds a sibling element, adding a new element to the receiver's
// parent and returning a TestBuilder for that new element.  If the receiver
// has no parent, adds a child to the receiver.
func (tb *testBuilder) AndChild(kind string) TestBuilder {
	if tb == nil {
		return nil
	}
	if tb.parent == nil {
		return tb.Child(kind)
	}
	return tb.Parent().Child(kind)
}

// Parent returns the parent of the receiver, or the receiver itself if it has
// no parent.  It supports chaining.
func (tb *testBuilder) Parent() TestBuilder {
	if tb == nil {
		return nil
	}
	if tb.parent == nil {
		return tb
	}
	return tb.parent
}

// CompareElements compares the provided got and want trees.  If they differ,
// raises an error on the provided testing.T object.
func CompareElements(t *testing.T, got, want *drawing.Element) {
	t.Helper()
	gotPP := got.PrettyPrint("")
	wantPP := want.PrettyPrint("")
	if diff := cmp.Diff(wantPP, gotPP); diff != "" {
		t.Errorf("Got drawing %s, diff (-want, +got) %s", gotPP, diff)
	}
}

// CompareTrees is a test helper for drawing producers.  It compares a tree
// produced by the system under test with a desired tree.  Both trees are
// produced by callbacks accepting either a drawing.Builder or a TestBuilder
// for a root element of the specified kind.  If either tree fails to build,
// that error is returned.
func CompareTrees(t *testing.T, rootKind string, buildGotIf any, buildWantIf any) error {
	t.Helper()
	got, err := buildTree(t, rootKind, buildGotIf)
	if err != nil {
		return err
	}
	want, err := buildTree(t, rootKind, buildWantIf)
	if err != nil {
		return err
	}
	CompareElements(t, got, want)
	return nil
}

func buildTree(t *testing.T, rootKind string, buildIf any) (*drawing.Element, error) {
	t.Helper()
	tb := drawing.NewTreeBuilder(rootKind)
	switch build := buildIf.(type) {
	case func(drawing.Builder):
		build(tb.Root())
	case func(TestBuilder):
		build(&testBuilder{b: tb.Root()})
	default:
		t.Fatalf("expected a func(drawing.Builder) or func(testutil.TestBuilder)")
	}
	return tb.Build()
}

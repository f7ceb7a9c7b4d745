/*
 * Mulberry - An OpenFlow Controller
 *
 * Copyright (C) 2016 The Mulberry Authors. All rights reserved.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package openflow

import (
	"strings"
	"testing"
)

// testAction is a version-independent action without a wire format.
type testAction struct {
	BaseAction
}

func (r *testAction) MarshalBinary() ([]byte, error) { return nil, nil }
func (r *testAction) UnmarshalBinary([]byte) error   { return nil }

func newTestAction(ports ...uint32) Action {
	action := new(testAction)
	for _, p := range ports {
		var out OutPort
		// SetValue(0) produces an invalid numbered port on purpose.
		out.SetValue(p)
		action.SetOutPort(out)
	}

	return action
}

func TestValidateActions(t *testing.T) {
	src := []struct {
		name          string
		action        Action
		errorExpected bool
		field         string
	}{
		{
			name:   "nil action is a legal no-op",
			action: nil,
		},
		{
			name:   "empty action list is a legal drop",
			action: new(testAction),
		},
		{
			name:   "ordered output ports",
			action: newTestAction(1, 2, 3),
		},
		{
			name:          "zero port at the first entry",
			action:        newTestAction(0, 2, 3),
			errorExpected: true,
			field:         "actions[0].port_no",
		},
		{
			name:          "zero port in the middle",
			action:        newTestAction(1, 0, 3),
			errorExpected: true,
			field:         "actions[1].port_no",
		},
		{
			name:          "zero port at the end",
			action:        newTestAction(1, 2, 0),
			errorExpected: true,
			field:         "actions[2].port_no",
		},
	}

	for _, v := range src {
		err := ValidateActions(v.action)
		if v.errorExpected == false && err != nil {
			t.Fatalf("%v: unexpected error: %v", v.name, err)
		}
		if v.errorExpected == false {
			continue
		}
		if err == nil {
			t.Fatalf("%v: expected error, but no error returns", v.name)
		}
		validation, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("%v: expected a ValidationError, got %T", v.name, err)
		}
		if validation.Field != v.field {
			t.Fatalf("%v: unexpected field: expected=%v, actual=%v", v.name, v.field, validation.Field)
		}
	}
}

func TestValidateActionsRejectsWholeSequence(t *testing.T) {
	// Two invalid entries: only the first one is reported, and the whole
	// sequence is rejected.
	action := newTestAction(1, 0, 0)

	err := ValidateActions(action)
	if err == nil {
		t.Fatal("expected error, but no error returns")
	}
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
	if !strings.HasPrefix(validation.Field, "actions[1]") {
		t.Fatalf("expected the first invalid index to be reported, got %v", validation.Field)
	}
}

func TestOutPortOrderPreserved(t *testing.T) {
	action := newTestAction(5, 1, 9, 3)

	ports := action.OutPort()
	expected := []uint32{5, 1, 9, 3}
	if len(ports) != len(expected) {
		t.Fatalf("unexpected number of output ports: expected=%v, actual=%v", len(expected), len(ports))
	}
	for i, p := range ports {
		if p.Value() != expected[i] {
			t.Fatalf("unexpected port order at %v: expected=%v, actual=%v", i, expected[i], p.Value())
		}
	}
}

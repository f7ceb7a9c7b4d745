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
	"fmt"
)

// ValidateActions checks every output of an action list against the port
// rules before the list is handed to a codec. The whole list is rejected on
// the first invalid entry, and the returned ValidationError names its index.
// A nil or empty action list is valid and means "no forwarding", which drops
// the packet after evaluation.
func ValidateActions(action Action) error {
	if action == nil {
		return nil
	}
	if err := action.Error(); err != nil {
		return err
	}

	for i, port := range action.OutPort() {
		if err := port.Validate(); err != nil {
			if v, ok := err.(*ValidationError); ok {
				return &ValidationError{
					Field:  fmt.Sprintf("actions[%d].%s", i, v.Field),
					Reason: v.Reason,
				}
			}
			return err
		}
	}

	return nil
}

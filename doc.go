// seehuhn.de/go/evolisa - approximate images by semi-transparent polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package evolisa approximates an image by a fixed number of
// semi-transparent polygons.
//
// The search is a hill climber: in every iteration one polygon of the
// current set is changed at random, the set is rendered at a reduced
// resolution and compared to the target, and the change is kept if the
// error did not increase.  The search runs until its context is
// cancelled or an iteration limit is reached, and the last accepted set
// is then available for rendering at full resolution.
package evolisa

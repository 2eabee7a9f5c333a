// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks poll write requests before they reach storage.

Validation is pure: no I/O, no clock. The caller supplies today's date
for the create rules:

	v := validation.ValidateCreate(req, models.DateOf(time.Now()))
	if err := v.Err(); err != nil {
		// err is a *validation.Error listing every violation
	}

# Rules

  - title: required, 3 to 100 characters
  - summary: required, 3 to 1500 characters
  - startsAt: required; on create, not before today
  - endsAt: required, not before startsAt (reported on endsAt)

All violations are collected in rule order. Lengths count characters,
not bytes.
*/
package validation

package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
)

// CompleteProfile asks for the roommate profile fields and submits them.
// Academic fields are only asked for students.
func (a *App) CompleteProfile(ctx context.Context) error {
	fields := map[string]any{}

	for _, k := range []string{"gender", "age", "occupation"} {
		v, err := getSimpleText(a.reader, "Enter "+k, a.out)
		if err != nil {
			return err
		}
		fields[k] = v
	}
	if n, err := strconv.Atoi(fields["age"].(string)); err == nil {
		fields["age"] = n
	}

	if strings.EqualFold(fields["occupation"].(string), models.OccupationStudent) {
		for _, k := range []string{"university", "yearOfStudy"} {
			v, err := getSimpleText(a.reader, "Enter "+k, a.out)
			if err != nil {
				return err
			}
			fields[k] = v
		}
	}

	for _, k := range []string{"lifestyle", "personality"} {
		v, err := getList(a.reader, "Enter "+k, a.out)
		if err != nil {
			return err
		}
		fields[k] = v
	}

	pref, err := getSimpleText(a.reader, "Preferred roommate gender (optional)", a.out)
	if err != nil {
		return err
	}
	if pref != "" {
		fields["preferences"] = map[string]any{"gender": pref}
	}

	if err := a.sess.SubmitProfile(ctx, fields); err != nil {
		return err
	}
	a.println("Profile completed.")
	return nil
}

// Profile prints the full stored profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.sess.Profile(ctx)
	if err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(p)) {
		a.println(fmt.Sprintf("%s: %v", k, p[k]))
	}
	return nil
}

// EditProfile changes the display name and phone.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", a.out)
	if err != nil {
		return err
	}

	if err := a.sess.UpdateProfile(ctx, name, phone); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}

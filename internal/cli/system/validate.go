package system

import (
	"fmt"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/validation"
)

// ValidateCmd checks the user profile for problems without touching the store.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	userProfile, err := ctx.LoadProfile()
	if err != nil {
		return err
	}

	result := validation.New().ValidateProfile(userProfile)
	fmt.Print(result.FormatReport())

	if result.HasIssues() {
		return fmt.Errorf("%d issue(s) found in %s", len(result.Issues), ctx.Config.ProfilePath)
	}
	return nil
}

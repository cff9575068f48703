package cli

import (
	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/ui"
)

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current ui
// theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorError() }
func (CLIColorProvider) Yellow() string { return ui.ColorWarning() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

package ui

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorPrimary highlights run parameters such as chunk and trial counts.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary highlights identifiers: modes, schedulers, run IDs.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess colors the final estimate and the optimal calibration row.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning colors durations and non-fatal warnings.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError colors failure messages.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

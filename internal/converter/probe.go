package converter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const probeValue = "tabi"

// workbookProbe is swapped out in tests to simulate a broken reader.
var workbookProbe = probeExcelize

// CheckCapabilities verifies that workbooks can be built and read back before
// any input is touched. A failure wraps ErrDependencyMissing.
func CheckCapabilities() error {
	if err := workbookProbe(); err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyMissing, err)
	}
	return nil
}

func probeExcelize() error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetCellValue(sheet, "A1", probeValue); err != nil {
		return err
	}

	got, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		return err
	}
	if got != probeValue {
		return fmt.Errorf("probe cell read back %q, want %q", got, probeValue)
	}
	return nil
}

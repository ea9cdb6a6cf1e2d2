package ui

// Progress prints sync progress notifications as they happen. It satisfies
// the syncer.Events interface.
type Progress struct{}

func (Progress) Info(msg string)    { Info(msg) }
func (Progress) Success(msg string) { Success(msg) }
func (Progress) Warning(msg string) { Warning(msg) }

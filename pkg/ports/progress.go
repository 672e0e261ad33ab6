package ports

// Progress reports export progress. It is called once per frame, in order,
// with done starting at 1 and total fixed for the whole export. A nil
// Progress is valid and means no reporting.
type Progress func(done, total int)

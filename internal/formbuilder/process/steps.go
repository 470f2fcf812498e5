package process

// Steps returns the form builder processes in execution order. Parents link
// to the student and family created before them.
func Steps(deps Deps) []Process {
	return []Process{
		NewCreateStudent(deps),
		NewCreateFamily(deps),
		NewCreateParents(deps),
	}
}

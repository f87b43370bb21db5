package workspace

// Clone returns a deep, structurally independent copy of the snapshot.
// Every slice and map is re-allocated so that no mutable substructure is
// shared between history entries.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		ID:           s.ID,
		Label:        s.Label,
		Timestamp:    s.Timestamp,
		Workspace:    s.Workspace,
		View:         s.View,
		Sprint:       s.Sprint,
		ProjectBrief: s.ProjectBrief,
		BriefLocked:  s.BriefLocked,
		Committed:    s.Committed,
	}

	out.Tasks = cloneTasks(s.Tasks)
	out.WIPLimits = cloneLimits(s.WIPLimits)
	out.Schedule = Schedule{
		Timeline: cloneTimeline(s.Schedule.Timeline),
		Calendar: cloneCalendar(s.Schedule.Calendar),
	}
	out.Docs = cloneDocs(s.Docs)
	out.Files = cloneFiles(s.Files)

	return out
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	copied := make([]Task, len(tasks))
	for i, t := range tasks {
		copied[i] = t
		if t.Tags != nil {
			copied[i].Tags = make([]string, len(t.Tags))
			copy(copied[i].Tags, t.Tags)
		}
	}
	return copied
}

func cloneLimits(limits map[string]int) map[string]int {
	if limits == nil {
		return nil
	}
	copied := make(map[string]int, len(limits))
	for k, v := range limits {
		copied[k] = v
	}
	return copied
}

func cloneTimeline(items []TimelineItem) []TimelineItem {
	if items == nil {
		return nil
	}
	copied := make([]TimelineItem, len(items))
	copy(copied, items)
	return copied
}

func cloneCalendar(entries []CalendarEntry) []CalendarEntry {
	if entries == nil {
		return nil
	}
	copied := make([]CalendarEntry, len(entries))
	copy(copied, entries)
	return copied
}

func cloneDocs(docs []Doc) []Doc {
	if docs == nil {
		return nil
	}
	copied := make([]Doc, len(docs))
	copy(copied, docs)
	return copied
}

func cloneFiles(files []FileEntry) []FileEntry {
	if files == nil {
		return nil
	}
	copied := make([]FileEntry, len(files))
	copy(copied, files)
	return copied
}

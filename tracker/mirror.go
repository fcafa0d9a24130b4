package tracker

import "slices"

// mirror is the client's copy of server state. It is only changed after the
// server confirms a mutation, or replaced wholesale by a fetch.
type mirror struct {
	projects       []Project
	projectsLoaded bool
	details        map[int]*ProjectDetail
	// taskProject maps a task ID to the project whose detail holds it.
	taskProject map[int]int
}

func newMirror() *mirror {
	return &mirror{
		details:     make(map[int]*ProjectDetail),
		taskProject: make(map[int]int),
	}
}

func (m *mirror) setProjects(projects []Project) {
	m.projects = slices.Clone(projects)
	m.projectsLoaded = true
}

func (m *mirror) projectIndex(id int) int {
	return slices.IndexFunc(m.projects, func(p Project) bool { return p.ID == id })
}

func (m *mirror) projectPartition(id int) Partition {
	if i := m.projectIndex(id); i >= 0 {
		return partitionOf(m.projects[i].IsDeleted)
	}
	if detail, ok := m.details[id]; ok {
		return partitionOf(detail.IsDeleted)
	}
	return PartitionNone
}

func (m *mirror) appendProject(p Project) {
	if m.projectIndex(p.ID) >= 0 {
		return
	}
	m.projects = append(m.projects, p)
}

func (m *mirror) setProjectDeleted(id int, deleted bool) {
	if i := m.projectIndex(id); i >= 0 {
		m.projects[i].IsDeleted = deleted
	}
	if detail, ok := m.details[id]; ok {
		detail.IsDeleted = deleted
	}
}

func (m *mirror) setProjectTitle(id int, title string) {
	if i := m.projectIndex(id); i >= 0 {
		m.projects[i].Title = title
	}
	if detail, ok := m.details[id]; ok {
		detail.Title = title
	}
}

func (m *mirror) removeProject(id int) {
	if i := m.projectIndex(id); i >= 0 {
		m.projects = slices.Delete(m.projects, i, i+1)
	}
	if detail, ok := m.details[id]; ok {
		for _, task := range detail.Tasks {
			delete(m.taskProject, task.ID)
		}
		for _, task := range detail.DeletedTasks {
			delete(m.taskProject, task.ID)
		}
		delete(m.details, id)
	}
}

func (m *mirror) setDetail(detail ProjectDetail) {
	if previous, ok := m.details[detail.ID]; ok {
		for _, task := range previous.Tasks {
			delete(m.taskProject, task.ID)
		}
		for _, task := range previous.DeletedTasks {
			delete(m.taskProject, task.ID)
		}
	}
	stored := cloneDetail(detail)
	if stored.Tasks == nil {
		stored.Tasks = []Task{}
	}
	if stored.DeletedTasks == nil {
		stored.DeletedTasks = []Task{}
	}
	m.details[detail.ID] = &stored
	for _, task := range stored.Tasks {
		m.taskProject[task.ID] = detail.ID
	}
	for _, task := range stored.DeletedTasks {
		m.taskProject[task.ID] = detail.ID
	}
	if i := m.projectIndex(detail.ID); i >= 0 {
		m.projects[i] = detail.Project
	}
}

func (m *mirror) detail(id int) (ProjectDetail, bool) {
	detail, ok := m.details[id]
	if !ok {
		return ProjectDetail{}, false
	}
	return cloneDetail(*detail), true
}

func (m *mirror) addTask(projectID int, task Task) {
	detail, ok := m.details[projectID]
	if !ok {
		return
	}
	if _, known := m.taskProject[task.ID]; known {
		return
	}
	detail.Tasks = append(detail.Tasks, task)
	m.taskProject[task.ID] = projectID
}

// locateTask returns the detail holding the task, the partition it is in and
// its index within that partition.
func (m *mirror) locateTask(id int) (*ProjectDetail, Partition, int) {
	projectID, ok := m.taskProject[id]
	if !ok {
		return nil, PartitionNone, -1
	}
	detail := m.details[projectID]
	if detail == nil {
		return nil, PartitionNone, -1
	}
	match := func(t Task) bool { return t.ID == id }
	if i := slices.IndexFunc(detail.Tasks, match); i >= 0 {
		return detail, PartitionActive, i
	}
	if i := slices.IndexFunc(detail.DeletedTasks, match); i >= 0 {
		return detail, PartitionDeleted, i
	}
	return nil, PartitionNone, -1
}

func (m *mirror) taskPartition(id int) Partition {
	_, partition, _ := m.locateTask(id)
	return partition
}

func (m *mirror) task(id int) (Task, bool) {
	detail, partition, i := m.locateTask(id)
	switch partition {
	case PartitionActive:
		return detail.Tasks[i], true
	case PartitionDeleted:
		return detail.DeletedTasks[i], true
	default:
		return Task{}, false
	}
}

// updateTask applies fn to the task in place, leaving its partition alone.
func (m *mirror) updateTask(id int, fn func(*Task)) {
	detail, partition, i := m.locateTask(id)
	switch partition {
	case PartitionActive:
		fn(&detail.Tasks[i])
	case PartitionDeleted:
		fn(&detail.DeletedTasks[i])
	}
}

func (m *mirror) moveTask(id int, to Partition) {
	detail, from, i := m.locateTask(id)
	if from == PartitionNone || from == to {
		return
	}
	switch to {
	case PartitionDeleted:
		task := detail.Tasks[i]
		detail.Tasks = slices.Delete(detail.Tasks, i, i+1)
		detail.DeletedTasks = append(detail.DeletedTasks, task)
	case PartitionActive:
		task := detail.DeletedTasks[i]
		detail.DeletedTasks = slices.Delete(detail.DeletedTasks, i, i+1)
		detail.Tasks = append(detail.Tasks, task)
	}
}

func (m *mirror) removeTask(id int) {
	detail, partition, i := m.locateTask(id)
	switch partition {
	case PartitionActive:
		detail.Tasks = slices.Delete(detail.Tasks, i, i+1)
	case PartitionDeleted:
		detail.DeletedTasks = slices.Delete(detail.DeletedTasks, i, i+1)
	}
	delete(m.taskProject, id)
}

func partitionOf(deleted bool) Partition {
	if deleted {
		return PartitionDeleted
	}
	return PartitionActive
}

func cloneDetail(detail ProjectDetail) ProjectDetail {
	detail.Tasks = slices.Clone(detail.Tasks)
	detail.DeletedTasks = slices.Clone(detail.DeletedTasks)
	return detail
}

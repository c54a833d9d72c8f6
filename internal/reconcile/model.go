package reconcile

// FlatEntry: 展平后的一条工作记录，一条日报里的多条工作记录会被展开成多个 FlatEntry
type FlatEntry struct {
	UserID          int64
	ProjectName     string
	TaskNumber      int32
	WorkType        string
	WorkDescription string
}

// UserAssignments: 某个用户被分配到的项目，Projects 按首次分配顺序排列并已去重
type UserAssignments struct {
	FullName string
	Projects []string
}

// AssignmentMap 按用户聚合全部分配记录，迭代顺序为用户首次出现的顺序
type AssignmentMap struct {
	byUser map[int64]*UserAssignments
	order  []int64
}

// Get 返回某个用户的分配情况，用户没有任何分配记录时返回 nil
func (m *AssignmentMap) Get(userID int64) *UserAssignments {
	return m.byUser[userID]
}

// Users 返回所有有分配记录的用户 ID，按首次出现顺序排列
func (m *AssignmentMap) Users() []int64 {
	return m.order
}

// Row: 对账后的一行结果，三个指针同时为 nil 表示该项目当天没有任何日报
type Row struct {
	ProjectName     string  `json:"projectName"`
	TaskNumber      *int32  `json:"taskNumber"`
	WorkType        *string `json:"workType"`
	WorkDescription *string `json:"workDescription"`
}

type UserRows struct {
	FullName string
	Rows     []Row
}

// UserReport 是最终返回给前端的形态
type UserReport struct {
	Name    string `json:"name"`
	Reports []Row  `json:"reports"`
}

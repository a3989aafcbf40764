package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
)

// mockRepos 聚合全部 mock，便于测试中直接操作内部数据
type mockRepos struct {
	user       *mockUserRepo
	department *mockDepartmentRepo
	professor  *mockProfessorRepo
	course     *mockCourseRepo
	semester   *mockSemesterRepo
	offering   *mockOfferingRepo
	enrollment *mockEnrollmentRepo
	rating     *mockRatingRepo
	tag        *mockTagRepo
}

// newMockRepository 组装未绑定数据库的 Repository，Transaction 直接在其上执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:       &mockUserRepo{users: make(map[uint]*model.User)},
		department: &mockDepartmentRepo{depts: make(map[uint]*model.Department), professors: make(map[uint]int64)},
		professor: &mockProfessorRepo{
			profs:       make(map[uint]*model.Professor),
			stats:       make(map[uint]repository.ProfessorStats),
			offerings:   make(map[uint][]repository.ProfessorOffering),
			views:       make(map[uint]int64),
			assignments: make(map[uint]int64),
		},
		course:     &mockCourseRepo{courses: make(map[uint]*model.Course)},
		semester:   &mockSemesterRepo{semesters: make(map[uint]*model.Semester)},
		offering:   &mockOfferingRepo{courseSemesters: make(map[uint]*model.CourseSemester), assignments: make(map[uint]*model.ProfessorCourseSemester)},
		enrollment: &mockEnrollmentRepo{enrolled: make(map[string]struct{})},
		rating:     &mockRatingRepo{tags: make(map[uint][]uint)},
		tag:        &mockTagRepo{tags: make(map[uint]model.Tag), professorTags: make(map[[2]uint]int64)},
	}
	repo := &repository.Repository{
		User:       m.user,
		Department: m.department,
		Professor:  m.professor,
		Course:     m.course,
		Semester:   m.semester,
		Offering:   m.offering,
		Enrollment: m.enrollment,
		Rating:     m.rating,
		Tag:        m.tag,
	}
	return repo, m
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts      map[uint]*model.Department
	professors map[uint]int64 // key: department id
	nextID     uint
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	for _, d := range m.depts {
		if d.Name == dept.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	dept.ID = m.nextID
	m.depts[dept.ID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uint) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	result := make([]model.Department, 0, len(m.depts))
	for _, d := range m.depts {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDepartmentRepo) UpdateName(_ context.Context, id uint, name string) error {
	d, ok := m.depts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, other := range m.depts {
		if other.ID != id && other.Name == name {
			return gorm.ErrDuplicatedKey
		}
	}
	d.Name = name
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.depts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.depts, id)
	return nil
}

func (m *mockDepartmentRepo) CountProfessors(_ context.Context, id uint) (int64, error) {
	return m.professors[id], nil
}

// ── Mock ProfessorRepository ──

type mockProfessorRepo struct {
	profs       map[uint]*model.Professor
	stats       map[uint]repository.ProfessorStats
	offerings   map[uint][]repository.ProfessorOffering
	views       map[uint]int64
	assignments map[uint]int64
	nextID      uint
}

func (m *mockProfessorRepo) Create(_ context.Context, prof *model.Professor) error {
	m.nextID++
	prof.ID = m.nextID
	m.profs[prof.ID] = prof
	return nil
}

func (m *mockProfessorRepo) GetByID(_ context.Context, id uint) (*model.Professor, error) {
	if p, ok := m.profs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) ListWithDepartment(_ context.Context) ([]model.Professor, error) {
	result := make([]model.Professor, 0, len(m.profs))
	for _, p := range m.profs {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProfessorRepo) Update(_ context.Context, id uint, name string, departmentID uint) error {
	p, ok := m.profs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Name = name
	p.DepartmentID = departmentID
	return nil
}

func (m *mockProfessorRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.profs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.profs, id)
	return nil
}

func (m *mockProfessorRepo) CountAssignments(_ context.Context, id uint) (int64, error) {
	return m.assignments[id], nil
}

func (m *mockProfessorRepo) Search(_ context.Context, _ string) ([]repository.ProfessorStats, error) {
	return m.ListStats(context.Background())
}

func (m *mockProfessorRepo) ListUnderrated(_ context.Context, limit int) ([]repository.ProfessorStats, error) {
	var result []repository.ProfessorStats
	for _, s := range m.stats {
		if s.NumberOfRatings > 0 {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ViewCount < result[j].ViewCount })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockProfessorRepo) ListStats(_ context.Context) ([]repository.ProfessorStats, error) {
	result := make([]repository.ProfessorStats, 0, len(m.stats))
	for _, s := range m.stats {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockProfessorRepo) GetStats(_ context.Context, id uint) (*repository.ProfessorStats, error) {
	if s, ok := m.stats[id]; ok {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) ListOfferings(_ context.Context, id uint) ([]repository.ProfessorOffering, error) {
	return m.offerings[id], nil
}

func (m *mockProfessorRepo) ListAvailable(_ context.Context, _ uint) ([]model.Professor, error) {
	return m.ListWithDepartment(context.Background())
}

func (m *mockProfessorRepo) IncrementView(_ context.Context, id uint) error {
	m.views[id]++
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[uint]*model.Course
	stats   []repository.CourseStats
	nextID  uint
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.courses {
		if c.Name == course.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	course.ID = m.nextID
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) UpdateName(_ context.Context, id uint, name string) error {
	c, ok := m.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Name = name
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) CountOfferings(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

func (m *mockCourseRepo) ListAvailable(_ context.Context, _ uint) ([]model.Course, error) {
	return m.List(context.Background())
}

func (m *mockCourseRepo) ListTopRated(_ context.Context, minRatings, limit int) ([]repository.CourseStats, error) {
	var result []repository.CourseStats
	for _, s := range m.stats {
		if s.NumberOfRatings >= int64(minRatings) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AverageQuality > result[j].AverageQuality })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockCourseRepo) ListStats(_ context.Context) ([]repository.CourseStats, error) {
	return m.stats, nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[uint]*model.Semester
	nextID    uint
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	m.nextID++
	semester.ID = m.nextID
	m.semesters[semester.ID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id uint) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	result := make([]model.Semester, 0, len(m.semesters))
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSemesterRepo) UpdateName(_ context.Context, id uint, name string) error {
	s, ok := m.semesters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Name = name
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.semesters[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) CountOfferings(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

// ── Mock OfferingRepository ──

type mockOfferingRepo struct {
	courseSemesters map[uint]*model.CourseSemester
	assignments     map[uint]*model.ProfessorCourseSemester
	nextID          uint
}

// addAssignment 直接写入一条完整的开课与授课分配
func (m *mockOfferingRepo) addAssignment(professorID, courseID, semesterID uint) *model.ProfessorCourseSemester {
	m.nextID++
	cs := &model.CourseSemester{ID: m.nextID, CourseID: courseID, SemesterID: semesterID}
	m.courseSemesters[cs.ID] = cs
	pcs := &model.ProfessorCourseSemester{ID: m.nextID, ProfessorID: professorID, CourseSemesterID: cs.ID}
	m.assignments[pcs.ID] = pcs
	return pcs
}

func (m *mockOfferingRepo) CreateCourseSemester(_ context.Context, cs *model.CourseSemester) error {
	for _, existing := range m.courseSemesters {
		if existing.CourseID == cs.CourseID && existing.SemesterID == cs.SemesterID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	cs.ID = m.nextID
	m.courseSemesters[cs.ID] = cs
	return nil
}

func (m *mockOfferingRepo) GetCourseSemester(_ context.Context, id uint) (*model.CourseSemester, error) {
	if cs, ok := m.courseSemesters[id]; ok {
		return cs, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) ListCourseSemesters(_ context.Context) ([]repository.CourseSemesterRow, error) {
	result := make([]repository.CourseSemesterRow, 0, len(m.courseSemesters))
	for _, cs := range m.courseSemesters {
		result = append(result, repository.CourseSemesterRow{ID: cs.ID, CourseID: cs.CourseID, SemesterID: cs.SemesterID})
	}
	return result, nil
}

func (m *mockOfferingRepo) DeleteCourseSemester(_ context.Context, id uint) error {
	if _, ok := m.courseSemesters[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courseSemesters, id)
	return nil
}

func (m *mockOfferingRepo) CreateAssignment(_ context.Context, pcs *model.ProfessorCourseSemester) error {
	for _, existing := range m.assignments {
		if existing.CourseSemesterID == pcs.CourseSemesterID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	pcs.ID = m.nextID
	m.assignments[pcs.ID] = pcs
	return nil
}

func (m *mockOfferingRepo) GetAssignment(_ context.Context, id uint) (*model.ProfessorCourseSemester, error) {
	if pcs, ok := m.assignments[id]; ok {
		return pcs, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) GetAssignmentByCourseSemester(_ context.Context, courseSemesterID uint) (*model.ProfessorCourseSemester, error) {
	for _, pcs := range m.assignments {
		if pcs.CourseSemesterID == courseSemesterID {
			return pcs, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) FindAssignment(_ context.Context, professorID, courseID, semesterID uint) (*model.ProfessorCourseSemester, error) {
	for _, pcs := range m.assignments {
		cs, ok := m.courseSemesters[pcs.CourseSemesterID]
		if ok && pcs.ProfessorID == professorID && cs.CourseID == courseID && cs.SemesterID == semesterID {
			return pcs, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) DeleteAssignmentByCourseSemester(_ context.Context, courseSemesterID uint) error {
	for id, pcs := range m.assignments {
		if pcs.CourseSemesterID == courseSemesterID {
			delete(m.assignments, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) CountAssignmentDependents(_ context.Context, _ uint) (int64, int64, error) {
	return 0, 0, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrolled map[string]struct{} // key: assignmentID|email
}

func enrollmentKey(assignmentID uint, email string) string {
	return fmt.Sprintf("%d|%s", assignmentID, email)
}

func (m *mockEnrollmentRepo) add(assignmentID uint, email string) {
	m.enrolled[enrollmentKey(assignmentID, email)] = struct{}{}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	key := enrollmentKey(e.ProfessorCourseSemesterID, e.StudentEmail)
	if _, ok := m.enrolled[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.enrolled[key] = struct{}{}
	return nil
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, assignmentID uint, email string) (bool, error) {
	_, ok := m.enrolled[enrollmentKey(assignmentID, email)]
	return ok, nil
}

func (m *mockEnrollmentRepo) ExistsForEmail(_ context.Context, email string) (bool, error) {
	for key := range m.enrolled {
		if _, e, _ := strings.Cut(key, "|"); e == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) ListByAssignment(_ context.Context, _ uint) ([]repository.EnrollmentRow, error) {
	return nil, nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, assignmentID uint, email string) error {
	key := enrollmentKey(assignmentID, email)
	if _, ok := m.enrolled[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.enrolled, key)
	return nil
}

// ── Mock RatingRepository ──

type mockRatingRepo struct {
	ratings   []*model.Rating
	tags      map[uint][]uint // key: rating id
	rows      []repository.RatingRow
	tagNames  map[uint][]string
	dist      map[int]int64
	createErr error
}

func (m *mockRatingRepo) Create(_ context.Context, rating *model.Rating) error {
	if m.createErr != nil {
		return m.createErr
	}
	rating.ID = uint(len(m.ratings) + 1)
	m.ratings = append(m.ratings, rating)
	return nil
}

func (m *mockRatingRepo) Exists(_ context.Context, assignmentID uint, email string) (bool, error) {
	for _, r := range m.ratings {
		if r.ProfessorCourseSemesterID == assignmentID && r.StudentEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRatingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.ratings)), nil
}

func (m *mockRatingRepo) ListByProfessor(_ context.Context, _, _, _ uint) ([]repository.RatingRow, error) {
	return m.rows, nil
}

func (m *mockRatingRepo) ListTagNames(_ context.Context, _ []uint) (map[uint][]string, error) {
	if m.tagNames == nil {
		return map[uint][]string{}, nil
	}
	return m.tagNames, nil
}

func (m *mockRatingRepo) Distribution(_ context.Context, _ uint) (map[int]int64, error) {
	if m.dist == nil {
		return map[int]int64{}, nil
	}
	return m.dist, nil
}

func (m *mockRatingRepo) AddTags(_ context.Context, ratingID uint, tagIDs []uint) error {
	m.tags[ratingID] = append(m.tags[ratingID], tagIDs...)
	return nil
}

// ── Mock TagRepository ──

type mockTagRepo struct {
	tags          map[uint]model.Tag
	professorTags map[[2]uint]int64 // key: {professor id, tag id}
	rebuilt       bool
}

func (m *mockTagRepo) List(_ context.Context) ([]model.Tag, error) {
	result := make([]model.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTagRepo) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.tags[id]; ok {
			n++
		}
	}
	return n, nil
}

func (m *mockTagRepo) IncrementProfessorTags(_ context.Context, professorID uint, tagIDs []uint) error {
	for _, id := range tagIDs {
		m.professorTags[[2]uint{professorID, id}]++
	}
	return nil
}

func (m *mockTagRepo) ListProfessorTags(_ context.Context, professorID uint) ([]repository.TagCount, error) {
	var result []repository.TagCount
	for key, count := range m.professorTags {
		if key[0] == professorID {
			result = append(result, repository.TagCount{Tag: m.tags[key[1]].Name, Count: count})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	return result, nil
}

func (m *mockTagRepo) ListOfferingTags(_ context.Context, _, _, _ uint) ([]repository.TagCount, error) {
	return []repository.TagCount{{Tag: "offering", Count: 1}}, nil
}

func (m *mockTagRepo) RebuildProfessorTags(_ context.Context) (int64, int64, error) {
	m.rebuilt = true
	professors := make(map[uint]struct{})
	for key := range m.professorTags {
		professors[key[0]] = struct{}{}
	}
	return int64(len(professors)), int64(len(m.professorTags)), nil
}

package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/ai"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

// in-memory repository fakes shared by the service tests

type fakeTaskRepo struct {
	nextID   int64
	nextSub  int64
	tasks    map[int64]*models.Task
	subtasks map[int64][]models.Subtask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    map[int64]*models.Task{},
		subtasks: map[int64][]models.Subtask{},
	}
}

func (r *fakeTaskRepo) Store(_ context.Context, t *models.Task) error {
	r.nextID++
	t.ID = r.nextID
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Subtasks = append([]models.Subtask{}, r.subtasks[id]...)
	return &cp, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	ids := make([]int64, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Task
	for _, id := range ids {
		t := r.tasks[id]
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.AssigneeID != nil && t.AssigneeID != *filter.AssigneeID {
			continue
		}
		if filter.CreatorID != nil && t.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.StageID != nil && t.StageID != *filter.StageID {
			continue
		}
		if filter.TitleContains != nil &&
			!strings.Contains(strings.ToLower(t.Title), strings.ToLower(*filter.TitleContains)) {
			continue
		}
		cp := *t
		cp.Subtasks = append([]models.Subtask{}, r.subtasks[id]...)
		out = append(out, cp)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	delete(r.subtasks, id)
	return nil
}

func (r *fakeTaskRepo) UpdateStage(_ context.Context, id, stageID int64, status models.TaskStatus) error {
	if t, ok := r.tasks[id]; ok {
		t.StageID = stageID
		t.Status = status
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTaskRepo) UpdateAssignee(_ context.Context, id, assigneeID int64) error {
	if t, ok := r.tasks[id]; ok {
		t.AssigneeID = assigneeID
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTaskRepo) AddSubtask(_ context.Context, taskID int64, title string) error {
	r.nextSub++
	r.subtasks[taskID] = append(r.subtasks[taskID], models.Subtask{
		ID:        r.nextSub,
		Title:     title,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeTaskRepo) UpdateSubtask(_ context.Context, taskID, subtaskID int64, title *string, isDone *bool) (bool, error) {
	subs := r.subtasks[taskID]
	for i := range subs {
		if subs[i].ID == subtaskID {
			if title != nil {
				subs[i].Title = *title
			}
			if isDone != nil {
				subs[i].IsDone = *isDone
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) DeleteSubtask(_ context.Context, taskID, subtaskID int64) (bool, error) {
	subs := r.subtasks[taskID]
	for i := range subs {
		if subs[i].ID == subtaskID {
			r.subtasks[taskID] = append(subs[:i], subs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) ListSubtasks(_ context.Context, taskID int64) ([]models.Subtask, error) {
	return append([]models.Subtask{}, r.subtasks[taskID]...), nil
}

func (r *fakeTaskRepo) CountByStage(_ context.Context, stageID int64) (int, error) {
	n := 0
	for _, t := range r.tasks {
		if t.StageID == stageID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) CountByAssignee(_ context.Context, userID int64, status *models.TaskStatus) (int, error) {
	n := 0
	for _, t := range r.tasks {
		if t.AssigneeID != userID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeTaskRepo) CountOverdue(_ context.Context) (int, error) {
	n := 0
	now := time.Now()
	for _, t := range r.tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

type fakeStageRepo struct {
	nextID int64
	stages map[int64]*models.WorkflowStage
}

func newFakeStageRepo() *fakeStageRepo {
	return &fakeStageRepo{stages: map[int64]*models.WorkflowStage{}}
}

func (r *fakeStageRepo) Store(_ context.Context, s *models.WorkflowStage) error {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	cp := *s
	r.stages[s.ID] = &cp
	return nil
}

func (r *fakeStageRepo) FindByID(_ context.Context, id int64) (*models.WorkflowStage, error) {
	s, ok := r.stages[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStageRepo) FindAll(_ context.Context) ([]models.WorkflowStage, error) {
	out := make([]models.WorkflowStage, 0, len(r.stages))
	for _, s := range r.stages {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeStageRepo) Count(_ context.Context) (int, error) {
	return len(r.stages), nil
}

func (r *fakeStageRepo) Update(_ context.Context, s *models.WorkflowStage) error {
	cp := *s
	r.stages[s.ID] = &cp
	return nil
}

func (r *fakeStageRepo) Delete(_ context.Context, id int64) error {
	delete(r.stages, id)
	return nil
}

func (r *fakeStageRepo) SetOrder(_ context.Context, id int64, order int) error {
	if s, ok := r.stages[id]; ok {
		s.Order = order
	}
	return nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) add(name, email, role string) *models.User {
	r.nextID++
	u := &models.User{ID: r.nextID, Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Store(_ context.Context, u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, name, email, bio string) (*models.User, error) {
	u := r.users[id]
	u.Name, u.Email, u.Bio = name, email, bio
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetTelegramSettings(_ context.Context, id int64) (int64, bool, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, false, nil
	}
	return u.TelegramChatID, u.TelegramNotify, nil
}

type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*models.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*models.Comment{}, users: users}
}

func (r *fakeCommentRepo) Store(_ context.Context, c *models.Comment) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	if r.users != nil {
		if u, ok := r.users.users[c.AuthorID]; ok {
			cp.Author = &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
		}
	}
	return &cp, nil
}

func (r *fakeCommentRepo) FindByTask(_ context.Context, taskID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id int64, content string) error {
	if c, ok := r.comments[id]; ok {
		c.Content = content
	}
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) CountByAuthor(_ context.Context, userID int64) (int, error) {
	n := 0
	for _, c := range r.comments {
		if c.AuthorID == userID {
			n++
		}
	}
	return n, nil
}

// recorder doubles for the side-effect collaborators

type notifyCall struct {
	Recipient int64
	Message   string
	TaskID    *int64
}

type recorderNotifier struct {
	calls []notifyCall
}

func (n *recorderNotifier) Notify(_ context.Context, recipientID int64, message string, taskID *int64) (*models.Notification, error) {
	n.calls = append(n.calls, notifyCall{Recipient: recipientID, Message: message, TaskID: taskID})
	return &models.Notification{RecipientID: recipientID, Message: message, TaskID: taskID}, nil
}

func (n *recorderNotifier) ListFor(context.Context, int64, int) ([]models.Notification, error) {
	return nil, nil
}
func (n *recorderNotifier) MarkRead(context.Context, int64) error    { return nil }
func (n *recorderNotifier) MarkAllRead(context.Context, int64) error { return nil }

// recorderActivity stores entries newest first, matching the repository's
// read ordering.
type recorderActivity struct {
	entries []models.Activity
	nextID  int64
}

func (a *recorderActivity) Append(_ context.Context, action string, actorID int64, taskID *int64, details string) (*models.Activity, error) {
	a.nextID++
	e := models.Activity{
		ID:        a.nextID,
		Action:    action,
		ActorID:   actorID,
		TaskID:    taskID,
		Details:   details,
		CreatedAt: time.Now(),
	}
	a.entries = append([]models.Activity{e}, a.entries...)
	return &e, nil
}

func (a *recorderActivity) Log(ctx context.Context, action string, actorID int64, taskID *int64, details string) {
	_, _ = a.Append(ctx, action, actorID, taskID, details)
}

func (a *recorderActivity) Recent(_ context.Context, taskID int64, limit int) ([]models.Activity, error) {
	var out []models.Activity
	for _, e := range a.entries {
		if e.TaskID != nil && *e.TaskID == taskID {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (a *recorderActivity) ListRecent(_ context.Context, limit int) ([]models.Activity, error) {
	if limit > len(a.entries) {
		limit = len(a.entries)
	}
	return a.entries[:limit], nil
}

type publishedEvent struct {
	Event   string
	UserID  int64 // 0 for broadcasts
	Payload interface{}
}

type recorderPublisher struct {
	events []publishedEvent
}

func (p *recorderPublisher) Broadcast(event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Event: event, Payload: payload})
}

func (p *recorderPublisher) ToUser(userID int64, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Event: event, UserID: userID, Payload: payload})
}

type fakeAssist struct {
	explain    *ai.RiskExplanation
	explainErr error
	parsed     *ai.ParsedTask
	parseErr   error
}

func (f *fakeAssist) ExplainTaskRisk(context.Context, models.RiskResult) (*ai.RiskExplanation, error) {
	if f.explainErr != nil {
		return nil, f.explainErr
	}
	return f.explain, nil
}

func (f *fakeAssist) ParseTaskFromText(context.Context, string, []models.User) (*ai.ParsedTask, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.parsed, nil
}

package transport

import "github.com/fastygo/taskie/domain"

// UserDataRequest is the body of register and login.
type UserDataRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserDataRequest(c domain.Credentials) UserDataRequest {
	return UserDataRequest{Name: c.Name, Email: c.Email, Password: c.Password}
}

func (r UserDataRequest) Credentials() domain.Credentials {
	return domain.Credentials{Name: r.Name, Email: r.Email, Password: r.Password}
}

// AddTaskRequest is the body of POST /api/note/add.
type AddTaskRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	TaskPriority int    `json:"taskPriority"`
}

func NewAddTaskRequest(t domain.NewTask) AddTaskRequest {
	return AddTaskRequest{Title: t.Title, Content: t.Content, TaskPriority: t.Priority}
}

func (r AddTaskRequest) NewTask() domain.NewTask {
	return domain.NewTask{Title: r.Title, Content: r.Content, Priority: r.TaskPriority}
}

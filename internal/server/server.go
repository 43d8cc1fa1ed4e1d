package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// Server is the sprintdeckd HTTP API
type Server struct {
	store  *Store
	tokens *TokenIssuer
	log    *logrus.Logger
	router *gin.Engine
}

// New wires the API routes over the given store and token issuer
func New(store *Store, tokens *TokenIssuer, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{
		store:  store,
		tokens: tokens,
		log:    log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/auth/signup", s.handleSignUp)
	r.POST("/auth/signin", s.handleSignIn)

	authed := r.Group("/", s.requireAuth)
	authed.GET("/auth/me", s.handleMe)
	authed.GET("/projects", s.handleListProjects)
	authed.POST("/projects", s.handleCreateProject)
	authed.POST("/projects/join", s.handleJoinProject)
	authed.GET("/projects/:id/sprints", s.handleListSprints)
	authed.POST("/projects/:id/sprints", s.handleCreateSprint)
	authed.GET("/projects/:id/backlog", s.handleBacklog)
	authed.GET("/sprints/:id/tasks", s.handleSprintTasks)
	authed.POST("/tasks", s.handleCreateTask)
	authed.PUT("/tasks/:id", s.handleUpdateTask)
	authed.DELETE("/tasks/:id", s.handleDeleteTask)

	s.router = r
	return s
}

// Router exposes the underlying gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// ServeHTTP makes Server an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireAuth verifies the bearer token and stores the user id in the
// request context
func (s *Server) requireAuth(c *gin.Context) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set("userID", userID)
	c.Next()
}

func (s *Server) userID(c *gin.Context) string {
	return c.GetString("userID")
}

// requireMember aborts unless the signed-in user belongs to the
// project. Returns false when aborted.
func (s *Server) requireMember(c *gin.Context, projectID string) bool {
	member, err := s.store.IsMember(projectID, s.userID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return false
	}
	if !member {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a project member"})
		return false
	}
	return true
}

// Auth handlers

type credentialsRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Email
	}

	profile, err := s.store.CreateUser(req.Email, displayName, hash)
	if errors.Is(err, domain.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("create user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := s.tokens.Issue(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	s.log.WithField("email", profile.Email).Info("user signed up")
	c.JSON(http.StatusCreated, domain.Session{Token: token, Profile: profile})
}

func (s *Server) handleSignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	profile, hash, err := s.store.UserByEmail(req.Email)
	if err != nil || !checkPassword(hash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := s.tokens.Issue(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	s.log.WithField("email", profile.Email).Info("user signed in")
	c.JSON(http.StatusOK, domain.Session{Token: token, Profile: profile})
}

func (s *Server) handleMe(c *gin.Context) {
	profile, err := s.store.UserByID(s.userID(c))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Project handlers

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ProjectsForUser(s.userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	project, err := s.store.CreateProject(req.Name, s.userID(c))
	if err != nil {
		s.log.WithError(err).Error("create project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleJoinProject(c *gin.Context) {
	var req struct {
		JoinCode string `json:"join_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "join_code is required"})
		return
	}

	project, err := s.store.ProjectByJoinCode(req.JoinCode)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown join code"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve join code"})
		return
	}

	if err := s.store.AddMember(project.ID, s.userID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Sprint handlers

func (s *Server) handleListSprints(c *gin.Context) {
	projectID := c.Param("id")
	if !s.requireMember(c, projectID) {
		return
	}

	sprints, err := s.store.SprintsByProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sprints"})
		return
	}
	if sprints == nil {
		sprints = []domain.Sprint{}
	}
	c.JSON(http.StatusOK, sprints)
}

func (s *Server) handleCreateSprint(c *gin.Context) {
	projectID := c.Param("id")
	if !s.requireMember(c, projectID) {
		return
	}

	var sprint domain.Sprint
	if err := c.ShouldBindJSON(&sprint); err != nil || sprint.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sprint name is required"})
		return
	}
	sprint.ProjectID = projectID

	created, err := s.store.CreateSprint(sprint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sprint"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Task handlers

func (s *Server) handleSprintTasks(c *gin.Context) {
	sprintID := c.Param("id")

	sprint, err := s.store.SprintByID(sprintID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sprint"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sprint"})
		return
	}
	if !s.requireMember(c, sprint.ProjectID) {
		return
	}

	tasks, err := s.store.TasksBySprint(sprintID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleBacklog(c *gin.Context) {
	projectID := c.Param("id")
	if !s.requireMember(c, projectID) {
		return
	}

	tasks, err := s.store.BacklogTasks(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list backlog"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var task domain.Task
	if err := c.ShouldBindJSON(&task); err != nil || task.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task title is required"})
		return
	}
	if task.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}
	if !s.requireMember(c, task.ProjectID) {
		return
	}

	if !task.Status.Valid() {
		task.Status = domain.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}

	created, err := s.store.CreateTask(task)
	if err != nil {
		s.log.WithError(err).Error("create task failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	s.log.WithFields(logrus.Fields{"task": created.ID, "title": created.Title}).Info("task created")
	c.JSON(http.StatusCreated, created)
}

// updateTaskRequest mirrors the client's update payload: the full
// task record plus the acting user for attribution
type updateTaskRequest struct {
	Task         domain.Task `json:"task"`
	ActingUserID string      `json:"acting_user_id"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	existing, err := s.store.TaskByID(taskID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}
	if !s.requireMember(c, existing.ProjectID) {
		return
	}

	if !req.Task.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	task := req.Task
	task.ID = taskID
	task.ProjectID = existing.ProjectID

	updated, err := s.store.UpdateTask(task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	s.log.WithFields(logrus.Fields{
		"task":   taskID,
		"status": updated.Status,
		"actor":  req.ActingUserID,
	}).Info("task updated")
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	existing, err := s.store.TaskByID(taskID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}
	if !s.requireMember(c, existing.ProjectID) {
		return
	}

	if err := s.store.DeleteTask(taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	s.log.WithField("task", taskID).Info("task deleted")
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

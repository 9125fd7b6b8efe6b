package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stratum-mining/sv2-wizard/internal/bundle"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// WizardSummary describes a registered wizard.
type WizardSummary struct {
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle,omitempty"`
	Topology      deploy.Topology `json:"topology"`
	InitialStepID string          `json:"initialStepId"`
}

// WizardDetail is a wizard with its full step graph.
type WizardDetail struct {
	WizardSummary
	Steps []steps.View `json:"steps"`
}

// SessionView is the state of a session plus a description of its
// current step.
type SessionView struct {
	ID        string       `json:"id"`
	Wizard    string       `json:"wizard"`
	State     engine.State `json:"state"`
	Step      steps.View   `json:"step"`
	Terminal  bool         `json:"terminal"`
	CanGoBack bool         `json:"canGoBack"`
}

// PlanView is the JSON form of a deployment plan.
type PlanView struct {
	Topology         deploy.Topology `json:"topology"`
	Method           deploy.Method   `json:"method"`
	Network          string          `json:"network"`
	UseJDC           bool            `json:"useJdc"`
	Artifacts        []ArtifactView  `json:"artifacts"`
	LaunchCommand    string          `json:"launchCommand"`
	Instructions     []string        `json:"instructions"`
	ConnectionString string          `json:"connectionString"`
	ReleaseURL       string          `json:"releaseUrl"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// ArtifactView is one generated file.
type ArtifactView struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type createSessionRequest struct {
	Wizard string      `json:"wizard" validate:"required"`
	Data   engine.Data `json:"data"`
}

type selectRequest struct {
	StepID   string `json:"stepId" validate:"required"`
	OptionID string `json:"optionId" validate:"required"`
}

type submitRequest struct {
	StepID string      `json:"stepId" validate:"required"`
	Data   engine.Data `json:"data"`
}

func summarize(d flows.Definition) WizardSummary {
	return WizardSummary{
		Name:          d.Name,
		Title:         d.Title,
		Subtitle:      d.Subtitle,
		Topology:      d.Topology,
		InitialStepID: d.Graph.Initial(),
	}
}

func (s *Server) listWizards(c echo.Context) error {
	all := flows.All()
	out := make([]WizardSummary, 0, len(all))
	for _, d := range all {
		out = append(out, summarize(d))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getWizard(c echo.Context) error {
	d, err := flows.Get(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, WizardDetail{
		WizardSummary: summarize(d),
		Steps:         steps.DescribeGraph(d.Graph),
	})
}

func (s *Server) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	d, err := flows.Get(req.Wizard)
	if err != nil {
		return err
	}

	sess, err := s.store.Create(d, req.Data, s.log)
	if err != nil {
		return err
	}
	s.stats.recordSessionCreated(d.Name)
	s.log.V(1).Info("session created", "session", sess.id, "wizard", d.Name)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.JSON(http.StatusCreated, view(sess))
}

func (s *Server) getSession(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		return c.JSON(http.StatusOK, view(sess))
	})
}

func (s *Server) deleteSession(c echo.Context) error {
	if err := s.store.Delete(c.Param("id")); err != nil {
		return err
	}
	s.stats.recordSessionsDeleted(1)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) selectOption(c echo.Context) error {
	var req selectRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return s.withSession(c, func(sess *session) error {
		err := sess.engine.SelectOption(req.StepID, req.OptionID)
		s.stats.recordTransition(sess.def.Name, "select", err)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view(sess))
	})
}

func (s *Server) submitStepData(c echo.Context) error {
	var req submitRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return s.withSession(c, func(sess *session) error {
		err := sess.engine.SubmitStepData(req.StepID, req.Data)
		s.stats.recordTransition(sess.def.Name, "submit", err)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view(sess))
	})
}

func (s *Server) goBack(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		sess.engine.GoBack()
		s.stats.recordTransition(sess.def.Name, "back", nil)
		return c.JSON(http.StatusOK, view(sess))
	})
}

func (s *Server) restart(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		sess.engine.Restart()
		s.stats.recordTransition(sess.def.Name, "restart", nil)
		return c.JSON(http.StatusOK, view(sess))
	})
}

func (s *Server) getPlan(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		plan, err := s.plan(sess)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, planView(plan))
	})
}

func (s *Server) getBundle(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		plan, err := s.plan(sess)
		if err != nil {
			return err
		}
		archive, err := bundle.Zip(plan.Files(), bundle.DefaultFolder)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", bundle.ArchiveName))
		return c.Blob(http.StatusOK, "application/zip", archive)
	})
}

// plan renders the deployment plan of a finished session.
func (s *Server) plan(sess *session) (*deploy.Plan, error) {
	if !sess.engine.IsTerminal() {
		return nil, fmt.Errorf("%w: current step is %q", ErrNotFinished, sess.engine.CurrentID())
	}
	plan, err := deploy.NewPlan(sess.def.Topology, sess.engine.Data(), deploy.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	s.stats.recordPlan(sess.def.Name, string(plan.Method))
	return plan, nil
}

// withSession runs fn with the session named by the id path parameter
// locked.
func (s *Server) withSession(c echo.Context, fn func(*session) error) error {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func view(sess *session) SessionView {
	e := sess.engine
	return SessionView{
		ID:        sess.id,
		Wizard:    sess.def.Name,
		State:     e.State(),
		Step:      steps.Describe(e.Current(), e.Data()),
		Terminal:  e.IsTerminal(),
		CanGoBack: e.CanGoBack(),
	}
}

func planView(p *deploy.Plan) PlanView {
	artifacts := make([]ArtifactView, 0, len(p.Artifacts))
	for _, a := range p.Artifacts {
		artifacts = append(artifacts, ArtifactView{Name: a.Name, Content: a.Content})
	}
	return PlanView{
		Topology:         p.Topology,
		Method:           p.Method,
		Network:          string(p.Network),
		UseJDC:           p.UseJDC,
		Artifacts:        artifacts,
		LaunchCommand:    p.LaunchCommand,
		Instructions:     p.Instructions,
		ConnectionString: p.ConnectionString,
		ReleaseURL:       p.ReleaseURL,
		Warnings:         p.Warnings,
	}
}

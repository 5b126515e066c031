package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/llm"
	"github.com/abhisek/interviewd/internal/lock"
	"github.com/abhisek/interviewd/internal/oracle"
	"github.com/abhisek/interviewd/internal/resume"
	"github.com/abhisek/interviewd/internal/store"
	"go.uber.org/zap"
)

// deps are the collaborators shared by serve and the interview commands.
type deps struct {
	store      *store.Store
	controller *interview.Controller
	resumes    resume.Directory
	redis      *lock.RedisLocker
}

func (d *deps) Close() {
	d.store.Close()
	if d.redis != nil {
		d.redis.Close()
	}
}

// buildDeps wires the store, LLM provider, oracle, resume source and
// session locker into a controller.
func buildDeps(ctx context.Context, st *store.Store) (*deps, error) {
	eventRepo := st.EventRepo()

	provider, err := llm.NewProvider(ctx, appConfig.LLMSettings(), eventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	d := &deps{store: st}
	switch appConfig.Resume.Source {
	case "http":
		d.resumes = resume.NewHTTPDirectory(appConfig.Resume.BaseURL, appConfig.Resume.Timeout)
	default:
		d.resumes = resume.NewStoreDirectory(st.ResumeRepo())
	}

	opts := []interview.Option{
		interview.WithEvents(eventRepo),
		interview.WithLogger(log.Named("interview")),
	}
	if r := appConfig.Redis; r.Addr != "" {
		d.redis = lock.NewRedis(lock.NewRedisClient(r.Addr, r.Password, r.DB), r.LockTTL, log.Named("lock"))
		if err := d.redis.Ping(ctx); err != nil {
			d.redis.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		opts = append(opts, interview.WithLocker(d.redis))
		log.Info("using redis session locks", zap.String("addr", r.Addr))
	}

	ctrl, err := interview.NewController(appConfig.InterviewSettings(),
		oracle.New(provider, oracle.DefaultConfig()),
		interview.NewStoreRepository(st.SessionRepo()),
		d.resumes, opts...)
	if err != nil {
		if d.redis != nil {
			d.redis.Close()
		}
		return nil, err
	}
	d.controller = ctrl
	return d, nil
}

package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/okian/slotcap/internal/adapters/repository"
	"github.com/okian/slotcap/internal/domain/model"
	"github.com/okian/slotcap/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

var testNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

// reviewed builds a submission whose expert review landed daysAgo before
// testNow.
func reviewed(agent, job string, pass bool, daysAgo int) model.Submission {
	at := testNow.AddDate(0, 0, -daysAgo)
	return model.Submission{
		AgentID:   agent,
		JobID:     job,
		Review:    model.Review{Pass: pass},
		CreatedAt: at.Add(-24 * time.Hour),
		Events: []model.ReviewEvent{
			{Status: model.StatusSubmitted, At: at.Add(-24 * time.Hour)},
			{Status: model.StatusExpertReviewed, At: at},
		},
	}
}

func drain(ctx context.Context, cur repository.StatCursor) ([]model.AgentJobStat, error) {
	defer cur.Close()
	var out []model.AgentJobStat
	for cur.Next(ctx) {
		out = append(out, cur.Stat())
	}
	return out, cur.Err()
}

func TestMemoryReviewStore(t *testing.T) {
	Convey("Given a review store with one week of history", t, func() {
		ctx := context.Background()
		w := window.At(testNow, 1)

		Convey("When submissions fall in and out of the window", func() {
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{
				reviewed("a1", "job-1", true, 1),
				reviewed("a1", "job-1", false, 3),
				reviewed("a1", "job-1", true, 9), // stale, outside window
			}))

			baselines, err := store.JobBaselines(ctx, w)

			Convey("Then only in-window reviews count", func() {
				So(err, ShouldBeNil)
				So(baselines, ShouldContainKey, "job-1")
				So(baselines["job-1"].Total, ShouldEqual, 2)
				So(baselines["job-1"].Pass, ShouldEqual, 1)
				So(baselines["job-1"].ApprovalRatio, ShouldAlmostEqual, 0.5)
			})
		})

		Convey("When a submission is flagged as an inevitable disqualification", func() {
			sub := reviewed("a1", "job-1", true, 2)
			sub.Review.Inevitable = true
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{
				sub,
				reviewed("a2", "job-1", true, 2),
			}))

			baselines, err := store.JobBaselines(ctx, w)

			Convey("Then it is excluded regardless of window membership", func() {
				So(err, ShouldBeNil)
				So(baselines["job-1"].Total, ShouldEqual, 1)
			})
		})

		Convey("When a submission never reached expert review", func() {
			pending := model.Submission{
				AgentID:   "a1",
				JobID:     "job-1",
				Review:    model.Review{},
				CreatedAt: testNow.AddDate(0, 0, -2),
				Events: []model.ReviewEvent{
					{Status: model.StatusSubmitted, At: testNow.AddDate(0, 0, -2)},
				},
			}
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{pending}))

			baselines, err := store.JobBaselines(ctx, w)

			Convey("Then it contributes nothing", func() {
				So(err, ShouldBeNil)
				So(baselines, ShouldBeEmpty)
			})
		})

		Convey("When the window bounds are probed exactly", func() {
			atFrom := reviewed("a1", "job-1", true, 7) // exactly now-7d: inclusive
			atTo := model.Submission{
				AgentID: "a2",
				JobID:   "job-1",
				Review:  model.Review{Pass: true},
				Events: []model.ReviewEvent{
					{Status: model.StatusExpertReviewed, At: testNow}, // exactly now: exclusive
				},
			}
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{atFrom, atTo}))

			baselines, err := store.JobBaselines(ctx, w)

			Convey("Then the lower bound counts and the upper does not", func() {
				So(err, ShouldBeNil)
				So(baselines["job-1"].Total, ShouldEqual, 1)
			})
		})

		Convey("When streaming agent/job stats", func() {
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{
				reviewed("b-agent", "job-2", true, 1),
				reviewed("a-agent", "job-2", false, 1),
				reviewed("c-agent", "job-1", true, 2),
				reviewed("a-agent", "job-1", true, 2),
				reviewed("a-agent", "job-1", true, 3),
			}))

			cur, err := store.AgentJobStats(ctx, w)
			So(err, ShouldBeNil)
			stats, serr := drain(ctx, cur)

			Convey("Then records arrive sorted by agent then job", func() {
				So(serr, ShouldBeNil)
				So(stats, ShouldHaveLength, 4)
				So(stats[0].AgentID, ShouldEqual, "a-agent")
				So(stats[0].JobID, ShouldEqual, "job-1")
				So(stats[1].AgentID, ShouldEqual, "a-agent")
				So(stats[1].JobID, ShouldEqual, "job-2")
				So(stats[2].AgentID, ShouldEqual, "b-agent")
				So(stats[3].AgentID, ShouldEqual, "c-agent")
			})

			Convey("And every record satisfies the stat invariants", func() {
				So(serr, ShouldBeNil)
				for _, st := range stats {
					So(st.Total, ShouldBeGreaterThanOrEqualTo, 1)
					So(st.Pass, ShouldBeLessThanOrEqualTo, st.Total)
					So(st.Pass, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("And grouped counts match the submissions", func() {
				So(serr, ShouldBeNil)
				So(stats[0].Total, ShouldEqual, 2) // a-agent on job-1
				So(stats[0].Pass, ShouldEqual, 2)
				So(stats[1].Total, ShouldEqual, 1) // a-agent on job-2
				So(stats[1].Pass, ShouldEqual, 0)
			})
		})

		Convey("When both aggregations run over the same history", func() {
			store := repository.NewMemoryReviewStore(repository.WithSubmissions([]model.Submission{
				reviewed("a1", "job-1", true, 1),
				reviewed("a1", "job-1", true, 2),
				reviewed("a2", "job-1", false, 1),
				reviewed("a2", "job-1", false, 3),
				reviewed("a3", "job-2", true, 4),
			}))

			baselines, err := store.JobBaselines(ctx, w)
			So(err, ShouldBeNil)
			cur, err := store.AgentJobStats(ctx, w)
			So(err, ShouldBeNil)
			stats, serr := drain(ctx, cur)
			So(serr, ShouldBeNil)

			Convey("Then per-job deviations sum to zero within tolerance", func() {
				sums := make(map[string]float64)
				for _, st := range stats {
					b := baselines[st.JobID]
					sums[st.JobID] += float64(st.Pass) - float64(st.Total)*b.ApprovalRatio
				}
				for _, sum := range sums {
					So(sum, ShouldAlmostEqual, 0.0, 1e-9)
				}
			})
		})

		Convey("When the consumer's context is cancelled mid-stream", func() {
			subs := make([]model.Submission, 0, 200)
			for i := 0; i < 200; i++ {
				subs = append(subs, reviewed("a1", "job-1", i%2 == 0, 1+i%6))
			}
			store := repository.NewMemoryReviewStore(
				repository.WithSubmissions(subs),
				repository.WithStreamBuffer(1),
			)

			cctx, cancel := context.WithCancel(ctx)
			cur, err := store.AgentJobStats(cctx, w)
			So(err, ShouldBeNil)
			defer cur.Close()

			cancel()

			Convey("Then the cursor surfaces the context error", func() {
				So(cur.Next(cctx), ShouldBeFalse)
				So(cur.Err(), ShouldEqual, context.Canceled)
			})
		})
	})
}

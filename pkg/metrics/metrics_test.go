package metrics_test

import (
	"testing"

	"github.com/okian/slotcap/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	convey.Convey("Given the global metrics manager", t, func() {
		convey.Convey("When recording run activity", func() {
			convey.So(func() {
				metrics.RecordRunStarted()
				metrics.RecordRunCompleted()
				metrics.RecordRunFailed()
				metrics.RecordRunDuration(0.42)
				metrics.UpdateBaselineJobs(3)
				metrics.RecordStatStreamed()
				metrics.RecordAgentScored()
				metrics.RecordAgentSkipped()
				metrics.RecordSlotDelta(-2)
				metrics.RecordTransformError()
				metrics.RecordBudgetWrite("modified")
				metrics.RecordBudgetWrite("matched")
				metrics.RecordBudgetWrite("failed")
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When gathering from the custom registry", func() {
			families, err := metrics.GetRegistry().Gather()

			convey.Convey("Then the run metrics are registered", func() {
				convey.So(err, convey.ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, fam := range families {
					names[fam.GetName()] = true
				}
				convey.So(names["slotcap_scoring_runs_started_total"], convey.ShouldBeTrue)
				convey.So(names["slotcap_scoring_run_duration_seconds"], convey.ShouldBeTrue)
				convey.So(names["slotcap_scoring_agents_scored_total"], convey.ShouldBeTrue)
				convey.So(names["slotcap_scoring_budget_writes_total"], convey.ShouldBeTrue)
			})
		})
	})
}

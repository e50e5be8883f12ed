package cmd

import (
	"github.com/spf13/cobra"

	xcommon "github.com/xuperchain/xcontrol/kernel/engines/xuperos/common"
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

type EventsCmd struct {
	BaseCmd
}

// GetEventsCmd 按txid查询事件，不指定txid时输出最近的事件
func GetEventsCmd(opts *GlobalOptions) *EventsCmd {
	eventsCmdIns := new(EventsCmd)

	var (
		txid  string
		limit int
	)
	eventsCmdIns.cmd = &cobra.Command{
		Use:     "events",
		Short:   "Show contract events.",
		Example: "xcontrol events --txid 1650000000000000000abcd -n 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(func(eng xcommon.Engine) error {
				var events []*ledger.ContractEvent
				if txid != "" {
					var err error
					events, err = eng.State().QueryEvents([]byte(txid))
					if err != nil {
						return err
					}
				} else {
					events = eng.State().RecentEvents(limit)
				}
				views := make([]eventView, 0, len(events))
				for _, e := range events {
					views = append(views, newEventView(e))
				}
				return printJSON(cmd.OutOrStdout(), views)
			})
		},
	}
	eventsCmdIns.cmd.Flags().StringVar(&txid, "txid", "", "transaction id")
	eventsCmdIns.cmd.Flags().IntVarP(&limit, "num", "n", 20, "number of recent events, 0 for all in memory")

	return eventsCmdIns
}

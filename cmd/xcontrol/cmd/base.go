package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/common/xaddress"
	xconf "github.com/xuperchain/xcontrol/kernel/common/xconfig"
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/engines"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos"
	xcommon "github.com/xuperchain/xcontrol/kernel/engines/xuperos/common"
	"github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/lib/utils"
)

type BaseCmd struct {
	// cobra command
	cmd *cobra.Command
}

func (t *BaseCmd) SetCmd(cmd *cobra.Command) {
	t.cmd = cmd
}

func (t *BaseCmd) GetCmd() *cobra.Command {
	return t.cmd
}

// GlobalOptions 所有子命令共用的参数
type GlobalOptions struct {
	// env.yaml 路径，为空时使用默认环境配置
	EnvConf string
	// 调用者地址，0x十六进制或xchain地址
	From string
}

func BindGlobalFlags(root *cobra.Command) *GlobalOptions {
	opts := new(GlobalOptions)
	root.PersistentFlags().StringVarP(&opts.EnvConf, "conf", "c", "", "engine environment config file path")
	root.PersistentFlags().StringVar(&opts.From, "from", "", "initiator address")
	return opts
}

func (o *GlobalOptions) loadEnvConf() (*xconf.EnvConf, error) {
	if o.EnvConf == "" {
		return xconf.GetDefEnvConf(), nil
	}
	return xconf.LoadEnvConf(o.EnvConf)
}

// withEngine 打开引擎执行fn，结束后关闭
func (o *GlobalOptions) withEngine(fn func(eng xcommon.Engine) error) error {
	envCfg, err := o.loadEnvConf()
	if err != nil {
		return err
	}
	engine, err := engines.CreateBCEngine(xcommon.BCEngineName, envCfg)
	if err != nil {
		return err
	}
	defer engine.Exit()

	eng, err := xuperos.EngineConvert(engine)
	if err != nil {
		return err
	}
	return fn(eng)
}

func (o *GlobalOptions) initiator() (common.Address, error) {
	if o.From == "" {
		return common.Address{}, fmt.Errorf("--from is required")
	}
	return xaddress.Parse(o.From)
}

// invoke 以--from身份调用合约并输出回执
func (o *GlobalOptions) invoke(out io.Writer, address, method string, args map[string][]byte) error {
	from, err := o.initiator()
	if err != nil {
		return err
	}
	addr, err := xaddress.Parse(address)
	if err != nil {
		return err
	}
	return o.withEngine(func(eng xcommon.Engine) error {
		receipt, err := eng.Manager().Invoke(&contract.InvokeRequest{
			Initiator: from,
			Contract:  addr,
			Method:    method,
			Args:      args,
		})
		if err != nil {
			return err
		}
		return printJSON(out, newReceiptView(receipt))
	})
}

// query 只读调用，输出响应内容
func (o *GlobalOptions) query(out io.Writer, address, method string, args map[string][]byte) error {
	addr, err := xaddress.Parse(address)
	if err != nil {
		return err
	}
	from := common.Address{}
	if o.From != "" {
		if from, err = xaddress.Parse(o.From); err != nil {
			return err
		}
	}
	return o.withEngine(func(eng xcommon.Engine) error {
		resp, err := eng.Manager().Query(&contract.InvokeRequest{
			Initiator: from,
			Contract:  addr,
			Method:    method,
			Args:      args,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(resp.Body))
		return nil
	})
}

// parseArgs 解析 key=value 形式的参数
func parseArgs(kvs []string) (map[string][]byte, error) {
	args := make(map[string][]byte, len(kvs))
	for _, kv := range kvs {
		idx := strings.Index(kv, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("bad argument %q, expect key=value", kv)
		}
		args[kv[:idx]] = []byte(kv[idx+1:])
	}
	return args, nil
}

type eventView struct {
	Contract string   `json:"contract"`
	Name     string   `json:"name"`
	Topics   []string `json:"topics"`
	Data     string   `json:"data,omitempty"`
	TxID     string   `json:"txid,omitempty"`
}

type receiptView struct {
	TxID     string      `json:"txid"`
	Address  string      `json:"address,omitempty"`
	Response string      `json:"response,omitempty"`
	Fee      int64       `json:"fee"`
	Events   []eventView `json:"events"`
}

func newEventView(e *ledger.ContractEvent) eventView {
	v := eventView{
		Contract: e.Contract.Hex(),
		Name:     e.Name,
		Data:     utils.F(e.Data),
		TxID:     string(e.TxID),
	}
	for _, topic := range e.Topics {
		v.Topics = append(v.Topics, topic.Hex())
	}
	return v
}

func newReceiptView(receipt *contract.Receipt) *receiptView {
	v := &receiptView{
		TxID: string(receipt.TxID),
		Fee:  receipt.ResourceUsed.XFee,
	}
	if receipt.Response != nil {
		v.Response = string(receipt.Response.Body)
	}
	for _, e := range receipt.Events {
		v.Events = append(v.Events, newEventView(e))
	}
	return v
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

package flows_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/util/placeholder"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// submitDefaults submits the current step with every field default plus
// the given overrides.
func submitDefaults(e *engine.Engine, overrides engine.Data) {
	view := steps.Describe(e.Current(), e.Data())
	data := engine.Data{}
	for _, f := range view.Fields {
		if f.Default != nil {
			data[f.Key] = f.Default
		}
	}
	for k, v := range overrides {
		data[k] = v
	}
	Expect(e.SubmitStepData(view.ID, data)).To(Succeed())
}

type recordingBuilders struct {
	calls       []string
	translators []configgen.TranslatorOptions
}

func (r *recordingBuilders) builders() deploy.Builders {
	base := deploy.DefaultBuilders()
	return deploy.Builders{
		Pool: func(d configgen.TemplateData) string {
			r.calls = append(r.calls, "pool")
			return base.Pool(d)
		},
		JDS: func(d configgen.TemplateData) string {
			r.calls = append(r.calls, "jds")
			return base.JDS(d)
		},
		JDC: func(d configgen.TemplateData) string {
			r.calls = append(r.calls, "jdc")
			return base.JDC(d)
		},
		Translator: func(d configgen.TemplateData, o configgen.TranslatorOptions) string {
			r.calls = append(r.calls, "translator")
			r.translators = append(r.translators, o)
			return base.Translator(d, o)
		},
	}
}

var _ = Describe("Full stack wizard", func() {
	var e *engine.Engine

	BeforeEach(func() {
		e = engine.New(flows.FullStack.Graph)
	})

	Context("on mainnet without custom templates", func() {
		It("uses the pool translator variant and never builds JD configs", func() {
			Expect(e.SelectOption(flows.FullStackNetwork, "opt_mainnet")).To(Succeed())
			submitDefaults(e, nil)
			submitDefaults(e, engine.Data{configgen.KeyPoolPayoutAddress: "bc1qpoolpayout"})
			Expect(e.SelectOption(flows.FullStackTemplateDecision, "opt_client_tpl_no")).To(Succeed())
			Expect(e.CurrentID()).To(Equal(flows.FullStackTranslator))
			submitDefaults(e, engine.Data{configgen.KeyUserIdentity: "miner01"})
			Expect(e.SelectOption(flows.FullStackDeployment, "deploy_bin")).To(Succeed())
			Expect(e.IsTerminal()).To(BeTrue())
			Expect(e.CurrentID()).To(Equal(flows.FullStackResultBinaries))

			rec := &recordingBuilders{}
			plan, err := deploy.NewPlan(flows.FullStack.Topology, e.Data(), deploy.WithBuilders(rec.builders()))
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.calls).To(Equal([]string{"pool", "translator"}))
			Expect(rec.translators).To(ConsistOf(configgen.TranslatorOptions{UseJDC: false}))
			Expect(plan.Names()).To(Equal([]string{deploy.PoolConfigFile, deploy.TranslatorConfigFile}))

			translator, _ := plan.Artifact(deploy.TranslatorConfigFile)
			Expect(translator).To(ContainSubstring("aggregate_channels = true"))
			Expect(translator).To(ContainSubstring("port = 34254"))
			Expect(plan.Warnings).To(BeEmpty())
		})
	})

	Context("on testnet4 with custom templates", func() {
		It("points pool and JD configs at the testnet4 socket", func() {
			Expect(e.SelectOption(flows.FullStackNetwork, "opt_testnet4")).To(Succeed())
			Expect(e.CurrentID()).To(Equal("bitcoin_setup_testnet4"))
			submitDefaults(e, nil)
			Expect(e.CurrentID()).To(Equal(flows.FullStackPoolTestnet4))
			submitDefaults(e, engine.Data{configgen.KeyPoolPayoutAddress: "tb1qpoolpayout"})
			Expect(e.SelectOption(flows.FullStackTemplateDecision, "opt_client_tpl_yes")).To(Succeed())
			submitDefaults(e, engine.Data{
				configgen.KeyUserIdentity:         "miner01",
				configgen.KeyCoinbaseRewardScript: "tb1qsolo",
			})
			submitDefaults(e, nil)
			Expect(e.SelectOption(flows.FullStackDeployment, "deploy_docker")).To(Succeed())
			Expect(e.IsTerminal()).To(BeTrue())

			plan, err := deploy.NewPlan(flows.FullStack.Topology, e.Data())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Names()).To(Equal([]string{
				deploy.PoolConfigFile, deploy.JDSConfigFile, deploy.JDCConfigFile,
				deploy.TranslatorConfigFile, deploy.DockerEnvFile,
			}))

			for _, name := range []string{deploy.PoolConfigFile, deploy.JDCConfigFile} {
				content, ok := plan.Artifact(name)
				Expect(ok).To(BeTrue())
				Expect(content).To(ContainSubstring("testnet4/node.sock"), name)
				Expect(content).NotTo(ContainSubstring(`"~/.bitcoin/node.sock"`), name)
			}

			jds, _ := plan.Artifact(deploy.JDSConfigFile)
			Expect(jds).To(ContainSubstring("core_rpc_port = 48332"))
			Expect(configgen.Lint(deploy.JDSConfigFile, jds, configgen.JDSRequiredKeys...)).To(Succeed())

			for _, a := range plan.Artifacts {
				Expect(placeholder.Unresolved(a.Content)).To(BeEmpty(), a.Name)
			}
		})
	})

	Context("at the first step", func() {
		It("treats going back as a no-op", func() {
			before := e.State()
			Expect(e.GoBack()).To(BeFalse())
			Expect(e.CurrentID()).To(Equal(flows.FullStackNetwork))
			Expect(e.State()).To(Equal(before))
		})
	})

	Context("when revisiting an answer", func() {
		It("keeps later data and overwrites only the changed field", func() {
			Expect(e.SelectOption(flows.FullStackNetwork, "opt_mainnet")).To(Succeed())
			submitDefaults(e, nil)
			Expect(e.GoBack()).To(BeTrue())
			Expect(e.GoBack()).To(BeTrue())

			Expect(e.SelectOption(flows.FullStackNetwork, "opt_testnet4")).To(Succeed())
			Expect(e.Data()[configgen.KeySelectedNetwork]).To(Equal("testnet4"))
			Expect(e.Data()).To(HaveKey(configgen.KeyBitcoinSocketPath))
		})
	})
})

var _ = Describe("Pool connection wizard", func() {
	It("builds only the translator when the pool constructs templates", func() {
		e := engine.New(flows.PoolConnection.Graph)
		Expect(e.SelectOption(flows.PoolConnectionPool, "pool_sri-community")).To(Succeed())
		Expect(e.SelectOption(flows.PoolConnectionTemplateDecision, "opt_client_tpl_no")).To(Succeed())
		submitDefaults(e, engine.Data{configgen.KeyUserIdentity: "miner01"})
		Expect(e.SelectOption(flows.PoolConnectionDeployment, "deploy_bin")).To(Succeed())

		plan, err := deploy.NewPlan(flows.PoolConnection.Topology, e.Data())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Names()).To(Equal([]string{deploy.TranslatorConfigFile}))

		translator, _ := plan.Artifact(deploy.TranslatorConfigFile)
		Expect(translator).To(ContainSubstring(`address = "75.119.150.111"`))
	})

	It("adds a JD client on signet when templates are constructed locally", func() {
		e := engine.New(flows.PoolConnection.Graph)
		Expect(e.SelectOption(flows.PoolConnectionPool, "pool_local")).To(Succeed())
		Expect(e.SelectOption(flows.PoolConnectionTemplateDecision, "opt_client_tpl_yes")).To(Succeed())
		Expect(e.SelectOption(flows.PoolConnectionNetwork, "opt_signet")).To(Succeed())
		submitDefaults(e, nil)
		submitDefaults(e, engine.Data{
			configgen.KeyUserIdentity:         "miner01",
			configgen.KeyCoinbaseRewardScript: "tb1qsolo",
		})
		submitDefaults(e, nil)
		Expect(e.SelectOption(flows.PoolConnectionDeployment, "deploy_bin")).To(Succeed())
		Expect(e.History()).To(HaveLen(7))

		plan, err := deploy.NewPlan(flows.PoolConnection.Topology, e.Data())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Names()).To(Equal([]string{deploy.JDCConfigFile, deploy.TranslatorConfigFile}))

		jdc, _ := plan.Artifact(deploy.JDCConfigFile)
		Expect(jdc).To(ContainSubstring(`network = "signet"`))
		translator, _ := plan.Artifact(deploy.TranslatorConfigFile)
		Expect(translator).To(ContainSubstring("aggregate_channels = false"))
	})
})

package deploy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"

	"github.com/stratum-mining/sv2-wizard/internal/bundle"
	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/util/placeholder"
)

// Topology is the shape of the stack a wizard configures.
type Topology string

const (
	// FullStack runs pool, JDS, optional JDC and translator locally.
	FullStack Topology = "full-stack"
	// PoolConnection runs an optional JDC and the translator against a remote pool.
	PoolConnection Topology = "pool-connection"
)

// Method is how the operator runs the processes.
type Method string

const (
	Docker   Method = "docker"
	Binaries Method = "binaries"
)

// Artifact file names.
const (
	PoolConfigFile       = "pool-config.toml"
	JDSConfigFile        = "jd-server-config.toml"
	JDCConfigFile        = "jd-client-config.toml"
	TranslatorConfigFile = "translator-config.toml"
	DockerEnvFile        = "docker_env"
)

const (
	// TranslatorPort is the port miners point at.
	TranslatorPort = configgen.TranslatorPort
	// ReleaseURL is where the process binaries and docker setup are published.
	ReleaseURL = "https://github.com/stratum-mining/sv2-apps/releases/tag/v0.1.0"
)

var (
	ErrUnknownTopology = errors.New("unknown topology")
	ErrUnknownMethod   = errors.New("unknown deployment method")
)

// ConnectionString is the endpoint shown to the operator for their miners.
func ConnectionString() string {
	return "stratum+tcp://<host-ip>:" + strconv.Itoa(TranslatorPort)
}

// Artifact is one generated file.
type Artifact struct {
	Name    string
	Content string
}

// Builders renders the individual configurations. Tests replace them to
// observe which builders a plan invokes.
type Builders struct {
	Pool       func(configgen.TemplateData) string
	JDS        func(configgen.TemplateData) string
	JDC        func(configgen.TemplateData) string
	Translator func(configgen.TemplateData, configgen.TranslatorOptions) string
}

// DefaultBuilders returns the configgen builders.
func DefaultBuilders() Builders {
	return Builders{
		Pool:       configgen.BuildPool,
		JDS:        configgen.BuildJDS,
		JDC:        configgen.BuildJDC,
		Translator: configgen.BuildTranslator,
	}
}

// Plan is everything the operator needs after the wizard finished.
type Plan struct {
	Topology         Topology
	Method           Method
	Network          configgen.Network
	UseJDC           bool
	Artifacts        []Artifact
	LaunchCommand    string
	Instructions     []string
	ConnectionString string
	ReleaseURL       string
	// Warnings lists degraded artifacts, such as leftover placeholders or
	// a payout address that still has to be filled in.
	Warnings []string
}

// Option configures NewPlan.
type Option func(*options)

type options struct {
	builders Builders
	log      logr.Logger
}

// WithBuilders replaces the configuration builders.
func WithBuilders(b Builders) Option {
	return func(o *options) { o.builders = b }
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewPlan builds the plan for a finished session of the given topology.
// The deployment method is read from the session data.
func NewPlan(topology Topology, data map[string]any, opts ...Option) (*Plan, error) {
	o := options{builders: DefaultBuilders(), log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if topology != FullStack && topology != PoolConnection {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopology, topology)
	}
	raw, _ := data[configgen.KeyDeploymentMethod].(string)
	method := Method(raw)
	if method != Docker && method != Binaries {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	td := configgen.FromData(data)
	network := configgen.LookupNetwork(td.Network).Name
	p := &Plan{
		Topology:         topology,
		Method:           method,
		Network:          network,
		UseJDC:           useJDC(topology, data),
		ConnectionString: ConnectionString(),
		ReleaseURL:       ReleaseURL,
	}

	b := o.builders
	if topology == FullStack {
		p.add(PoolConfigFile, b.Pool(td))
		if p.UseJDC {
			p.add(JDSConfigFile, b.JDS(td))
		}
	}
	if p.UseJDC {
		p.add(JDCConfigFile, b.JDC(td))
	}
	p.add(TranslatorConfigFile, b.Translator(td, configgen.TranslatorOptions{UseJDC: p.UseJDC}))

	if method == Docker {
		env, err := dockerEnv(p, td)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", DockerEnvFile, err)
		}
		p.Artifacts = append(p.Artifacts, Artifact{Name: DockerEnvFile, Content: env})
	}

	p.LaunchCommand = launchCommand(topology, method, p.UseJDC)
	p.Instructions = instructions(p)

	for _, w := range p.Warnings {
		o.log.Info("degraded artifact", "warning", w)
	}
	o.log.V(1).Info("deployment plan ready", "topology", topology, "method", method, "jdc", p.UseJDC, "artifacts", len(p.Artifacts))
	return p, nil
}

// useJDC reports whether the operator constructs their own templates. The
// full stack defaults to yes when the answer is missing.
func useJDC(topology Topology, data map[string]any) bool {
	v, ok := data[configgen.KeyConstructTemplates]
	if !ok || v == nil {
		return topology == FullStack
	}
	return configgen.FromData(data).ConstructTemplates
}

func (p *Plan) add(name, content string) {
	if keys := placeholder.Unresolved(content); len(keys) > 0 {
		p.Warnings = append(p.Warnings, fmt.Sprintf("%s: unresolved placeholders %s", name, strings.Join(keys, ", ")))
	}
	if strings.Contains(content, configgen.PayoutAddressPlaceholder) {
		p.Warnings = append(p.Warnings, fmt.Sprintf("%s: payout address not set, replace %s before starting", name, configgen.PayoutAddressPlaceholder))
	}
	p.Warnings = append(p.Warnings, lintWarnings(name, content)...)
	p.Artifacts = append(p.Artifacts, Artifact{Name: name, Content: content})
}

// lintWarnings parses TOML artifacts. Leftover placeholders are already
// reported by add.
func lintWarnings(name, content string) []string {
	if !strings.HasSuffix(name, ".toml") {
		return nil
	}
	var required []string
	if name == JDSConfigFile {
		required = configgen.JDSRequiredKeys
	}

	var lintErr *configgen.LintError
	if !errors.As(configgen.Lint(name, content, required...), &lintErr) {
		return nil
	}
	var warnings []string
	if lintErr.Err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: %v", name, lintErr.Err))
	}
	if len(lintErr.Missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: missing keys %s", name, strings.Join(lintErr.Missing, ", ")))
	}
	return warnings
}

// Names returns the artifact file names in emission order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Artifacts))
	for i, a := range p.Artifacts {
		names[i] = a.Name
	}
	return names
}

// Artifact returns the content of the named artifact.
func (p *Plan) Artifact(name string) (string, bool) {
	for _, a := range p.Artifacts {
		if a.Name == name {
			return a.Content, true
		}
	}
	return "", false
}

// Files returns the artifacts in the form the bundle package consumes.
func (p *Plan) Files() []bundle.File {
	files := make([]bundle.File, len(p.Artifacts))
	for i, a := range p.Artifacts {
		files[i] = bundle.File{Name: a.Name, Data: []byte(a.Content)}
	}
	return files
}

func dockerEnv(p *Plan, td configgen.TemplateData) (string, error) {
	var services []string
	if p.Topology == FullStack {
		services = append(services, "pool")
		if p.UseJDC {
			services = append(services, "jd_server")
		}
	}
	if p.UseJDC {
		services = append(services, "jd_client")
	}
	services = append(services, "translator")

	env := map[string]string{
		"COMPOSE_PROFILES": strings.Join(services, ","),
		"NETWORK":          string(p.Network),
		"CONFIG_DIR":       "./config",
		"TRANSLATOR_PORT":  strconv.Itoa(TranslatorPort),
	}
	if p.Topology == FullStack || p.UseJDC {
		socket := td.SocketPath
		if socket == "" {
			socket = configgen.LookupNetwork(p.Network).SocketPath
		}
		env["BITCOIN_SOCKET_PATH"] = socket
	}

	out, err := godotenv.Marshal(env)
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}

package deploy

import (
	"fmt"
	"strings"
)

func launchCommand(topology Topology, method Method, useJDC bool) string {
	if method == Docker {
		return "docker compose --env-file ./" + DockerEnvFile + " up -d"
	}

	var lines []string
	switch topology {
	case FullStack:
		lines = append(lines, "cd pool-apps", "./pool -c ../config/"+PoolConfigFile+" &")
		if useJDC {
			lines = append(lines, "./jd_server -c ../config/"+JDSConfigFile+" &")
		}
		lines = append(lines, "cd ../miner-apps")
		if useJDC {
			lines = append(lines, "./jd_client -c ../config/"+JDCConfigFile+" &")
		}
		lines = append(lines, "./translator -c ../config/"+TranslatorConfigFile)
	case PoolConnection:
		lines = append(lines, "cd miner-apps")
		if useJDC {
			lines = append(lines, "./jd_client_sv2 -c ../config/"+JDCConfigFile+" &")
		}
		lines = append(lines, "./translator_sv2 -c ../config/"+TranslatorConfigFile)
	}
	return strings.Join(lines, "\n")
}

func instructions(p *Plan) []string {
	var out []string

	switch {
	case p.Method == Docker:
		out = append(out, fmt.Sprintf("Download the docker compose setup from %s.", p.ReleaseURL))
		out = append(out, fmt.Sprintf("Place %s next to docker-compose.yml and the configuration files in a config/ directory.", DockerEnvFile))
	case p.Topology == FullStack:
		out = append(out, fmt.Sprintf("Download pool-apps-{architecture}.tar.gz and miner-apps-{architecture}.tar.gz from %s and extract both.", p.ReleaseURL))
		out = append(out, "Place the configuration files in a config/ directory next to pool-apps and miner-apps.")
	default:
		out = append(out, fmt.Sprintf("Download miner-apps-{architecture}.tar.gz from %s and extract it.", p.ReleaseURL))
		out = append(out, "Place the configuration files in a config/ directory next to miner-apps.")
	}

	if p.Topology == FullStack || p.UseJDC {
		out = append(out, fmt.Sprintf("Make sure Bitcoin Core (%s) is running with its IPC socket enabled.", p.Network))
	}

	switch {
	case p.Topology == FullStack && p.UseJDC:
		out = append(out, "Start the pool, the JD server, the JD client and the translator, in that order.")
	case p.Topology == FullStack:
		out = append(out, "Start the pool and the translator. No JD server or JD client is needed.")
	case p.UseJDC:
		out = append(out, "Start the JD client, then the translator.")
	default:
		out = append(out, "Start the translator.")
	}

	out = append(out, fmt.Sprintf("Point your miners at %s, replacing <host-ip> with this machine's address.", p.ConnectionString))
	return out
}

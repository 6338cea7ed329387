package http

import (
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
)

// FilterIP пропускает только запросы из доверенной подсети. Пустая подсеть отключает проверку.
func FilterIP(trustedSubnet string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustedSubnet != "" {
				_, ipNet, err := net.ParseCIDR(trustedSubnet)
				if err != nil {
					log.Warn().Err(err).Msg("Failed to parse CIDR")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				if !ipNet.Contains(remoteIP(r)) {
					w.WriteHeader(http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

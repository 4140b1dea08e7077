// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// optionalBool is a flag.Value that records whether the flag was given at
// all, so an explicit "false" can override a default of true.
type optionalBool struct {
	value *bool
}

// stringList is a flag.Value for comma separated lists.
type stringList []string

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a                server address in format [host]:[port]
//	-grpc-address     grpc server address in format [host]:[port]
//	-d                database DSN ("memory", "postgres://...", "sqlite://...")
//	-c/-config        json file path with configs
//	-token-sign-key   token signing key
//	-token-issuer     token issuer name
//	-token-ttl        token lifetime in minutes
//	-bcrypt-cost      bcrypt work factor
//	-cipher           aes-256-gcm | chacha20-poly1305
//	-scope-to-owner   restrict secrets to their owner (true|false)
//	-env              deployment environment
//	-log-level        minimum log level
//	-request-timeout  request timeout (e.g., "30s", "1m")
//	-rate-limit       register/login attempts per window per IP
//	-rate-window      rate limit window (e.g., "1m")
//	-allowed-origins  comma separated CORS origins
//	-s                client: server base URL
//	-client-timeout   client: request timeout
//	-log-file         client: log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenTTL, bcryptCost, rateLimit int
	var cipher, environment, logLevel string
	var scope optionalBool
	var requestTimeout, rateWindow, clientTimeout time.Duration
	var allowedOrigins stringList
	var adapterAddress, logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.IntVar(&tokenTTL, "token-ttl", 0, "Token lifetime in minutes")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost")
	fs.StringVar(&cipher, "cipher", "", "Cipher for new secrets")
	fs.Var(&scope, "scope-to-owner", "Restrict secrets to their owner")
	fs.StringVar(&environment, "env", "", "Deployment environment")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&rateLimit, "rate-limit", 0, "Register/login attempts per window per IP")
	fs.DurationVar(&rateWindow, "rate-window", 0, "Rate limit window (e.g., 1m)")
	fs.Var(&allowedOrigins, "allowed-origins", "Comma separated CORS origins")
	fs.StringVar(&adapterAddress, "s", "", "Server base URL used by the client")
	fs.DurationVar(&clientTimeout, "client-timeout", 0, "Client request timeout")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:        tokenSignKey,
			TokenIssuer:         tokenIssuer,
			TokenTTLMinutes:     tokenTTL,
			BcryptCost:          bcryptCost,
			Cipher:              cipher,
			ScopeSecretsToOwner: scope.value,
			Environment:         environment,
			LogLevel:            logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
			RateLimit:      rateLimit,
			RateWindow:     rateWindow,
			AllowedOrigins: allowedOrigins,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: clientTimeout,
			LogFile:        logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty (all interfaces).
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within [1, 65535]")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// String implements flag.Value.
func (b *optionalBool) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

// Set implements flag.Value.
func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

// IsBoolFlag lets the flag be given without a value ("-scope-to-owner").
func (b *optionalBool) IsBoolFlag() bool {
	return true
}

// String implements flag.Value.
func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.
func (l *stringList) Set(s string) error {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

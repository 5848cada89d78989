package config

import (
	"errors"
	"flag"
	"net"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-owner-only-attachments restrict uploads to the note owner
//	-blob-endpoint object store endpoint host:port
//	-blob-bucket object store bucket for attachment images
//	-blob-public-url public base URL attachment links are built from
//	-cache-addr redis address for the note read cache
//	-events-brokers comma-separated kafka broker list
//	-events-topic kafka audit topic
//	-events-enabled enable audit event publishing
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var ownerOnlyAttachments bool
	var blobEndpoint string
	var blobBucket string
	var blobPublicURL string
	var cacheAddr string
	var eventsBrokers string
	var eventsTopic string
	var eventsEnabled bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.BoolVar(&ownerOnlyAttachments, "owner-only-attachments", false, "Restrict attachment uploads to the note owner")
	flag.StringVar(&blobEndpoint, "blob-endpoint", "", "Object store endpoint host:port")
	flag.StringVar(&blobBucket, "blob-bucket", "", "Object store bucket for attachment images")
	flag.StringVar(&blobPublicURL, "blob-public-url", "", "Public base URL for attachment links")
	flag.StringVar(&cacheAddr, "cache-addr", "", "Redis address for the note read cache")
	flag.StringVar(&eventsBrokers, "events-brokers", "", "Comma-separated kafka broker list")
	flag.StringVar(&eventsTopic, "events-topic", "", "Kafka audit topic")
	flag.BoolVar(&eventsEnabled, "events-enabled", false, "Enable audit event publishing")

	flag.Parse()

	var brokers []string
	if eventsBrokers != "" {
		brokers = strings.Split(eventsBrokers, ",")
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			TokenDuration:        tokenDuration,
			OwnerOnlyAttachments: ownerOnlyAttachments,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Blob: Blob{
				Endpoint:      blobEndpoint,
				Bucket:        blobBucket,
				PublicBaseURL: blobPublicURL,
			},
			Cache: Cache{
				Addr: cacheAddr,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Events: Events{
			Enabled: eventsEnabled,
			Brokers: brokers,
			Topic:   eventsTopic,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

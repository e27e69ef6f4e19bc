package catalog

import (
	"strings"
	"testing"

	"dvdenrich/internal/config"
)

func TestMySQLConfigCarriesCharset(t *testing.T) {
	mc := mysqlConfig(config.Database{
		Host:     "db.local",
		Port:     3307,
		User:     "web",
		Password: "secret",
		Name:     "dvdcatalog",
		Charset:  "utf8mb4",
	})
	if mc.Addr != "db.local:3307" || mc.DBName != "dvdcatalog" || mc.User != "web" {
		t.Fatalf("unexpected config: addr=%s db=%s user=%s", mc.Addr, mc.DBName, mc.User)
	}
	if got := mc.Params["charset"]; got != "utf8mb4" {
		t.Fatalf("charset param = %q, want utf8mb4", got)
	}
	if dsn := mc.FormatDSN(); !strings.Contains(dsn, "charset=utf8mb4") {
		t.Fatalf("dsn %q missing charset", dsn)
	}
}

func TestMySQLConfigWithoutCharset(t *testing.T) {
	mc := mysqlConfig(config.Database{Host: "localhost", Port: 3306, Name: "dvdcatalog"})
	if _, ok := mc.Params["charset"]; ok {
		t.Fatalf("unexpected charset param: %v", mc.Params)
	}
}

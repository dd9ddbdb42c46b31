package reqinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRemote = netip.MustParseAddrPort("192.0.2.10:54321")

func TestExtract_AllHeadersPresent(t *testing.T) {
	h := MapHeaders{
		"user-agent":      "TestBot/1.0",
		"Accept-Encoding": "gzip, br",
		"ACCEPT":          "text/html",
		"Accept-Language": "en-US",
		"Referer":         "https://example.com/a?b=c",
		"Connection":      "keep-alive",
		"Keep-Alive":      "timeout=5",
		"Accept-Charset":  "utf-8",
		"Via":             "1.1 proxy",
		"Forwarded":       "for=192.0.2.60;proto=http",
	}
	info := Extract(testRemote, http.MethodGet, h)

	assert.Equal(t, "192.0.2.10", info.IPAddr)
	assert.Equal(t, RemoteHostUnavailable, info.RemoteHost)
	assert.Equal(t, uint16(54321), info.Port)
	assert.Equal(t, "GET", info.Method)
	for name, got := range map[string]*string{
		"user-agent":      info.UserAgent,
		"Accept-Encoding": info.Encoding,
		"ACCEPT":          info.MIME,
		"Accept-Language": info.Language,
		"Referer":         info.Referer,
		"Connection":      info.Connection,
		"Keep-Alive":      info.KeepAlive,
		"Accept-Charset":  info.Charset,
		"Via":             info.Via,
		"Forwarded":       info.Forwarded,
	} {
		require.NotNil(t, got, name)
		assert.Equal(t, h[name], *got, name)
	}
}

func TestExtract_MissingHeadersAreNil(t *testing.T) {
	info := Extract(testRemote, http.MethodGet, MapHeaders{})
	assert.Nil(t, info.UserAgent)
	assert.Nil(t, info.Encoding)
	assert.Nil(t, info.MIME)
	assert.Nil(t, info.Language)
	assert.Nil(t, info.Referer)
	assert.Nil(t, info.Connection)
	assert.Nil(t, info.KeepAlive)
	assert.Nil(t, info.Charset)
	assert.Nil(t, info.Via)
	assert.Nil(t, info.Forwarded)

	// nil 头集合同样不报错
	info = Extract(testRemote, http.MethodHead, nil)
	assert.Nil(t, info.UserAgent)
	assert.Equal(t, "HEAD", info.Method)
}

func TestExtract_EmptyHeaderIsPresent(t *testing.T) {
	info := Extract(testRemote, http.MethodGet, MapHeaders{"Referer": ""})
	require.NotNil(t, info.Referer)
	assert.Equal(t, "", *info.Referer)
}

func TestExtract_MalformedValueIsAbsent(t *testing.T) {
	cases := map[string]string{
		"non-ascii":   "Bot/1.0 é",
		"invalid-utf": "Bot\xff",
		"control":     "Bot\x01",
		"del":         "Bot\x7f",
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			info := Extract(testRemote, http.MethodGet, MapHeaders{"User-Agent": v})
			assert.Nil(t, info.UserAgent)
		})
	}
	info := Extract(testRemote, http.MethodGet, MapHeaders{"User-Agent": "a\tb c"})
	require.NotNil(t, info.UserAgent)
	assert.Equal(t, "a\tb c", *info.UserAgent)
}

func TestExtract_IPv6AndMapped(t *testing.T) {
	info := Extract(netip.MustParseAddrPort("[2001:db8::1]:8080"), http.MethodGet, nil)
	assert.Equal(t, "2001:db8::1", info.IPAddr)
	assert.Equal(t, uint16(8080), info.Port)

	info = Extract(netip.MustParseAddrPort("[::ffff:198.51.100.7]:80"), http.MethodGet, nil)
	assert.Equal(t, "198.51.100.7", info.IPAddr)

	info = Extract(netip.MustParseAddrPort("[fe80::1%eth0]:1"), http.MethodGet, nil)
	assert.Equal(t, "fe80::1%eth0", info.IPAddr)
}

func TestHTTPHeader_FirstValueCaseInsensitive(t *testing.T) {
	hdr := http.Header{}
	hdr.Add("Accept-Language", "en-US")
	hdr.Add("accept-language", "de-DE")
	v, ok := HTTPHeader(hdr).Get("ACCEPT-LANGUAGE")
	assert.True(t, ok)
	assert.Equal(t, "en-US", v)

	_, ok = HTTPHeader(hdr).Get("Via")
	assert.False(t, ok)
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/all", nil)
	r.RemoteAddr = "[2001:db8::2]:443"
	r.Header.Set("User-Agent", "curl/8.0")
	info := FromRequest(r)
	assert.Equal(t, "2001:db8::2", info.IPAddr)
	assert.Equal(t, uint16(443), info.Port)
	require.NotNil(t, info.UserAgent)
	assert.Equal(t, "curl/8.0", *info.UserAgent)

	r.RemoteAddr = "somehost:99"
	info = FromRequest(r)
	assert.Equal(t, "somehost", info.IPAddr)
	assert.Equal(t, uint16(99), info.Port)

	r.RemoteAddr = "@"
	info = FromRequest(r)
	assert.Equal(t, "@", info.IPAddr)
	assert.Equal(t, uint16(0), info.Port)
}

func TestField(t *testing.T) {
	v := "TestBot/1.0"
	assert.Equal(t, "TestBot/1.0", Field(&v))
	assert.Equal(t, "unknown", Field(nil))
}

func TestText_UserAgentOnly(t *testing.T) {
	info := Extract(testRemote, http.MethodGet, MapHeaders{"User-Agent": "TestBot/1.0"})
	want := "ip_addr: 192.0.2.10\n" +
		"remote_host: unavailable\n" +
		"user_agent: TestBot/1.0\n" +
		"port: 54321\n" +
		"language: \n" +
		"referer: \n" +
		"connection: \n" +
		"keep_alive: \n" +
		"method: GET\n" +
		"encoding: \n" +
		"mime: \n" +
		"charset: \n" +
		"via: \n" +
		"forwarded: \n"
	assert.Equal(t, want, info.Text())
	assert.Len(t, strings.Split(strings.TrimSuffix(info.Text(), "\n"), "\n"), 14)
	assert.NotContains(t, info.Text(), Unknown)
}

func TestJSON_NullsForAbsent(t *testing.T) {
	info := Extract(testRemote, http.MethodGet, MapHeaders{
		"Accept-Language": "en-US",
		"Accept":          "text/html",
	})
	data, err := json.Marshal(info)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"language":"en-US"`)
	assert.Contains(t, s, `"mime":"text/html"`)
	assert.Contains(t, s, `"referer":null`)
	assert.Contains(t, s, `"user_agent":null`)
	assert.True(t, strings.HasPrefix(s, `{"ip_addr":"192.0.2.10","remote_host":"unavailable","user_agent":null,"port":54321,"method":"GET"`))

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, 14)
}

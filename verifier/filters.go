package verifier

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Lists holds the static policy tables consulted before any network I/O.
// They are configuration, not logic: operators can swap the tables without
// touching the probe.
type Lists struct {
	DisposableDomains map[string]bool
	FreeProviders     map[string]bool
	RoleAccounts      map[string]bool
}

// DefaultLists returns the built-in policy tables.
func DefaultLists() *Lists {
	return &Lists{
		DisposableDomains: loadDisposableDomains(),
		FreeProviders:     loadFreeProviders(),
		RoleAccounts:      loadRoleAccounts(),
	}
}

// IsDisposable reports whether the domain is on the disposable disallow-list.
func (l *Lists) IsDisposable(domain string) bool {
	return l.DisposableDomains[domain]
}

// IsFreeProvider reports whether the domain is a well-known consumer mail provider.
func (l *Lists) IsFreeProvider(domain string) bool {
	return l.FreeProviders[domain]
}

// IsRoleAccount reports whether the local part names a generic organizational
// mailbox rather than an individual's.
func (l *Lists) IsRoleAccount(localPart string) bool {
	return l.RoleAccounts[strings.ToLower(localPart)]
}

// validFormat is the basic local@domain.tld shape check. Addresses failing it
// are rejected before any network call.
func validFormat(email string) bool {
	return emailRegex.MatchString(email)
}

// splitAddress returns the local part and lowercased domain, or ok=false when
// the address does not split into exactly two parts.
func splitAddress(email string) (localPart, domain string, ok bool) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.ToLower(parts[1]), true
}

func loadRoleAccounts() map[string]bool {
	accounts := map[string]bool{}
	for _, a := range []string{
		"info", "admin", "support", "sales", "contact", "help", "service",
		"office", "hello", "team", "mail", "webmaster", "postmaster",
		"noreply", "no-reply", "jobs", "careers", "hr", "marketing",
		"billing", "accounts",
	} {
		accounts[a] = true
	}
	return accounts
}

func loadFreeProviders() map[string]bool {
	providers := map[string]bool{}
	for _, p := range []string{
		"gmail.com", "yahoo.com", "outlook.com", "hotmail.com",
		"aol.com", "protonmail.com", "icloud.com", "mail.com",
		"yandex.com", "zoho.com", "gmx.com",
	} {
		providers[p] = true
	}
	return providers
}

func loadDisposableDomains() map[string]bool {
	domains := make(map[string]bool)
	for _, d := range strings.Split(disposableDomainList, "\n") {
		d = strings.TrimSpace(d)
		if d != "" {
			domains[d] = true
		}
	}
	return domains
}

const disposableDomainList = `
mailinator.com
mailinator.net
mailinator.org
mailinator2.com
tempmail.org
temp-mail.org
temp-mail.io
tempmail2.com
tempmailer.com
tempmailer.de
tempmaildemo.com
tempmailaddress.com
10minutemail.com
10minutemail.co.za
20minutemail.com
30minutemail.com
60minutemail.com
guerrillamail.com
guerrillamail.biz
guerrillamail.de
guerrillamail.info
guerrillamail.net
guerrillamail.org
guerrillamailblock.com
guerillamail.com
guerillamail.net
guerillamail.org
trashmail.com
trashmail.at
trashmail.de
trashmail.me
trashmail.net
trashmail.org
trashmail.ws
trash-mail.at
trash-mail.com
trash-mail.de
trashymail.com
trashymail.net
trashmailer.com
yopmail.com
yopmail.fr
yopmail.net
maildrop.cc
dispostable.com
fakeinbox.com
throwawaymail.com
throwawayemailaddress.com
mailnesia.com
getairmail.com
mytemp.email
fake-mail.com
mail-temp.com
tempail.com
tempomail.fr
tempinbox.com
tempinbox.co.uk
tempemail.net
tempemail.biz
tempemail.com
tempe-mail.com
temporaryinbox.com
temporaryemail.net
temporaryforwarding.com
temporarioemail.com.br
mailmetrash.com
discard.email
discardmail.com
discardmail.de
mailcatch.com
mintemail.com
notmailinator.com
spamgourmet.com
spamhole.com
spam.la
spam4.me
spamspot.com
spambox.us
spamfree24.org
spamfree24.de
spamfree24.com
spamfree.eu
spamdecoy.net
spamcorptastic.com
spamday.com
spamherelots.com
spamhereplease.com
spamthis.co.uk
spamthisplease.com
spamavert.com
spambog.com
spambog.de
spambog.ru
suremail.info
sharklasers.com
harakirimail.com
anonbox.net
anonmails.de
anonymbox.com
bugmenot.com
deadaddress.com
deadspam.com
devnullmail.com
disposableaddress.com
disposableemailaddresses.com
disposableinbox.com
dispose.it
dodgit.com
dodgeit.com
dontsendmespam.de
dump-email.info
dumpyemail.com
e4ward.com
emailsensei.com
emailtemporario.com.br
explodemail.com
filzmail.com
get1mail.com
getonemail.com
gishpuppy.com
haltospam.com
hidemail.de
incognitomail.com
incognitomail.net
incognitomail.org
jetable.com
jetable.net
jetable.org
kasmail.com
killmail.com
killmail.net
klzlk.com
kurzepost.de
letthemeatspam.com
litedrop.com
mail-temporaire.fr
mail4trash.com
mailbucket.org
mailexpire.com
mailforspam.com
mailin8r.com
mailinater.com
mailincubator.com
mailme.ir
mailme.lv
mailmoat.com
mailnull.com
mailsac.com
mailscrap.com
mailshell.com
mailsiphon.com
mailslite.com
mailtemp.info
mailtrash.net
mailzilla.com
mailzilla.org
meltmail.com
mycleaninbox.net
myphantomemail.com
mytempemail.com
mytempmail.com
mytrashmail.com
neverbox.com
no-spam.ws
nobulk.com
noclickemail.com
nomail2me.com
nospam4.us
nospamfor.us
nospammail.net
nowmymail.com
objectmail.com
oneoffemail.com
onewaymail.com
oopi.org
ourklips.com
pookmail.com
proxymail.eu
punkass.com
quickinbox.com
rcpt.at
recode.me
rejectmail.com
rtrtr.com
safe-mail.net
selfdestructingmail.com
sendspamhere.com
shieldedmail.com
shiftmail.com
shortmail.net
sibmail.com
skeefmail.com
slaskpost.se
sneakemail.com
snkmail.com
sofimail.com
sogetthis.com
soodonims.com
spamvia.com
speed.1s.fr
supergreatmail.com
tempalias.com
thankyou2010.com
thisisnotmyrealemail.com
tilien.com
tmailinator.com
tradermail.info
tyldd.com
uggsrock.com
venompen.com
veryrealemail.com
vubby.com
webemail.me
weg-werf-email.de
wegwerfadresse.de
wegwerfemail.com
wegwerfemail.de
wegwerfmail.de
wegwerfmail.info
wegwerfmail.net
wegwerfmail.org
wh4f.org
whyspam.me
willselfdestruct.com
winemaven.info
wronghead.com
wuzup.net
wuzupmail.net
xagloo.com
xemaps.com
xents.com
xmaily.com
xoxy.net
yep.it
yogamaven.com
youmailr.com
yuurok.com
zehnminutenmail.de
zippymail.info
zoemail.net
zoemail.org
0-mail.com
0clickemail.com
0wnd.net
0wnd.org
`

package mockhost

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func newTestHost(t *testing.T, addr string, coins uint64) (*Ledger, *Host) {
	t.Helper()
	ledger := newTestLedger(t)
	return ledger, NewHost(ledger, addr, coins)
}

func TestDataRoundTripThroughCurrentAddress(t *testing.T) {
	_, host := newTestHost(t, "SC1", 0)

	require.NoError(t, host.SetData([]byte("key"), []byte("value")))
	got, err := host.GetData([]byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	has, err := host.HasData([]byte("key"))
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, host.DeleteData([]byte("key")))
	has, err = host.HasData([]byte("key"))
	require.NoError(t, err)
	require.False(t, has)
}

func TestAppendDataConcatenates(t *testing.T) {
	_, host := newTestHost(t, "SC1", 0)

	require.NoError(t, host.AppendData([]byte("k"), []byte("foo")))
	require.NoError(t, host.AppendData([]byte("k"), []byte("bar")))

	got, err := host.GetData([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("foobar"), got)
}

func TestInitCallPushesAndFinishCallPops(t *testing.T) {
	ledger, host := newTestHost(t, "SC1", 0)
	require.NoError(t, ledger.Seed("SC2", []byte("callee bytecode"), 0))

	bytecode, err := host.InitCall("SC2", 0)
	require.NoError(t, err)
	require.Equal(t, []byte("callee bytecode"), bytecode)
	require.Equal(t, "SC2", host.currentAddress())

	stack, err := host.GetCallStack()
	require.NoError(t, err)
	require.Equal(t, []string{"SC1", "SC2"}, stack)

	require.NoError(t, host.FinishCall())
	require.Equal(t, "SC1", host.currentAddress())
}

func TestFinishCallWithoutInitCallErrors(t *testing.T) {
	_, host := newTestHost(t, "SC1", 0)
	require.Error(t, host.FinishCall())
}

func TestInitCallMissingModuleErrors(t *testing.T) {
	_, host := newTestHost(t, "SC1", 0)
	_, err := host.InitCall("missing", 0)
	require.Error(t, err)
}

func TestTransferCoinsMovesBalance(t *testing.T) {
	ledger, host := newTestHost(t, "SC1", 0)
	require.NoError(t, ledger.Seed("SC1", nil, 100))
	require.NoError(t, ledger.Seed("SC2", nil, 0))

	require.NoError(t, host.TransferCoins("SC2", 40))

	from, err := host.GetBalanceFor("SC1")
	require.NoError(t, err)
	require.Equal(t, uint64(60), from)

	to, err := host.GetBalanceFor("SC2")
	require.NoError(t, err)
	require.Equal(t, uint64(40), to)
}

func TestGetCallCoinsReflectsConstructorValue(t *testing.T) {
	_, host := newTestHost(t, "SC1", 77)
	coins, err := host.GetCallCoins()
	require.NoError(t, err)
	require.Equal(t, uint64(77), coins)
}

func TestGetTimeUsesInjectedClock(t *testing.T) {
	mock := clock.NewMock()
	ledger := newTestLedger(t)
	ledger.clock = mock
	host := NewHost(ledger, "SC1", 0)

	got, err := host.GetTime()
	require.NoError(t, err)
	require.Equal(t, mock.Now().UnixMilli(), got)
}

func TestCreateModuleAssignsFreshAddress(t *testing.T) {
	_, host := newTestHost(t, "SC1", 0)
	addr1, err := host.CreateModule([]byte("module a"))
	require.NoError(t, err)
	addr2, err := host.CreateModule([]byte("module b"))
	require.NoError(t, err)
	require.NotEqual(t, addr1, addr2)
}
